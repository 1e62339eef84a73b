package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahashem12/LaunchpadX-sub001/internal/agreement"
)

func newAgreementCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agreement",
		Short: "Work with co-founder agreement drafts",
	}
	cmd.AddCommand(newAgreementValidateCmd(opts))
	return cmd
}

func newAgreementValidateCmd(opts *globalOptions) *cobra.Command {
	var (
		step   string
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate an agreement draft (JSON); use - for stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var errs map[string]string
			if remote {
				c, err := opts.client()
				if err != nil {
					return err
				}
				result, err := c.ValidateAgreement(cmd.Context(), step, raw)
				if err != nil {
					return err
				}
				errs = result.Errors
			} else {
				var data agreement.Data
				if err := json.Unmarshal(raw, &data); err != nil {
					return fmt.Errorf("parse %s: %w", args[0], err)
				}
				local, err := agreement.ValidateStep(step, data)
				if err != nil {
					return err
				}
				errs = local
			}

			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintln(out, "agreement is valid")
				return nil
			}

			fields := make([]string, 0, len(errs))
			for field := range errs {
				fields = append(fields, field)
			}
			slices.Sort(fields)
			for _, field := range fields {
				fmt.Fprintf(out, "%s: %s\n", field, errs[field])
			}
			return fmt.Errorf("agreement has %d problem(s)", len(errs))
		},
	}
	cmd.Flags().StringVar(&step, "step", agreement.StepAll, "step to validate: "+strings.Join([]string{
		agreement.StepOrganization, agreement.StepEquity, agreement.StepGovernance, agreement.StepAll,
	}, ", "))
	cmd.Flags().BoolVar(&remote, "remote", false, "validate with the API instead of locally")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
