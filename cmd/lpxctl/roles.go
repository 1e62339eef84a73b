package main

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ahashem12/LaunchpadX-sub001/internal/appcache"
	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

var errSignIn = errors.New("not signed in: pass --token or set LPX_TOKEN")

func newRolesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Check and manage your role applications",
	}
	cmd.AddCommand(newRolesStatusCmd(opts))
	cmd.AddCommand(newRolesApplyCmd(opts))
	cmd.AddCommand(newRolesWatchCmd(opts))
	return cmd
}

func describe(entry appcache.Entry) string {
	switch {
	case entry.Loading:
		return "loading"
	case !entry.Loaded:
		return "unknown"
	case entry.Application == nil:
		return "not applied"
	default:
		return string(entry.Application.Status)
	}
}

func newRolesStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status ROLE_ID...",
		Short: "Show your application status for one or more roles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			store := appcache.NewStore(c, appcache.WithLogger(opts.logger()))

			g, ctx := errgroup.WithContext(cmd.Context())
			for _, roleID := range args {
				g.Go(func() error {
					return store.EnsureLoaded(ctx, roleID)
				})
			}
			if err := g.Wait(); err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return errSignIn
				}
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tSTATUS")
			for _, roleID := range args {
				entry, _ := store.Get(roleID)
				fmt.Fprintf(w, "%s\t%s\n", roleID, describe(entry))
			}
			return w.Flush()
		},
	}
}

func newRolesApplyCmd(opts *globalOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "apply ROLE_ID",
		Short: "Apply to a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			store := appcache.NewStore(c, appcache.WithLogger(opts.logger()))

			app, err := store.Apply(cmd.Context(), args[0], message)
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				return errSignIn
			case errors.Is(err, domain.ErrAlreadyApplied):
				return fmt.Errorf("you have already applied to role %s", args[0])
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied to role %s (application %s, %s)\n", args[0], app.ID, app.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "note for the project team")
	return cmd
}

func newRolesWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch ROLE_ID...",
		Short: "Print application status changes as they happen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			store := appcache.NewStore(c, appcache.WithLogger(opts.logger()))

			out := &lockedWriter{w: cmd.OutOrStdout()}
			for _, roleID := range args {
				unsubscribe := store.Subscribe(roleID, func(entry appcache.Entry) {
					fmt.Fprintf(out, "%s\t%s\n", entry.RoleID, describe(entry))
				})
				defer unsubscribe()
			}

			ctx := cmd.Context()
			for _, roleID := range args {
				if err := store.EnsureLoaded(ctx, roleID); err != nil {
					if errors.Is(err, domain.ErrUnauthenticated) {
						return errSignIn
					}
					return err
				}
			}

			err = c.Watch(ctx, args, func(event domain.ApplicationEvent) {
				app := event.Application
				store.Put(app.RoleID, &app)
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
