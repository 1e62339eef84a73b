package client

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type listenRequest struct {
	Type  string   `json:"type"`
	Roles []string `json:"roles"`
}

// Watch streams status changes of the current user's applications to roleIDs
// into fn until ctx is done or the connection drops.
func (c *Client) Watch(ctx context.Context, roleIDs []string, fn func(domain.ApplicationEvent)) error {
	if c.token == "" {
		return domain.ErrUnauthenticated
	}

	endpoint := *c.baseURL
	if endpoint.Scheme == "https" {
		endpoint.Scheme = "wss"
	} else {
		endpoint.Scheme = "ws"
	}
	endpoint.Path += "/realtime"

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)
	header.Set("User-Agent", c.userAgent)

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return domain.ErrUnauthenticated
		}
		return errors.Wrap(err, "dial realtime")
	}
	defer ws.Close()

	if err := ws.WriteJSON(listenRequest{Type: "listen", Roles: roleIDs}); err != nil {
		return errors.Wrap(err, "send listen request")
	}

	stop := context.AfterFunc(ctx, func() {
		ws.Close()
	})
	defer stop()

	for {
		var event domain.ApplicationEvent
		if err := ws.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "read realtime event")
		}
		fn(event)
	}
}
