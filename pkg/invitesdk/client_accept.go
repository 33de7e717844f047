package invitesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Inspect reports the state of the invitation behind token without
// consuming it. An expired invitation returns ErrExpired.
func (c *Client) Inspect(ctx context.Context, token string) (*InspectResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/accept/"+url.PathEscape(token), "", nil)
	if err != nil {
		return nil, err
	}

	var out InspectResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Accept consumes the invitation and creates the account.
func (c *Client) Accept(ctx context.Context, token string, req AcceptRequest) (*AcceptResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accept/"+url.PathEscape(token), "", req)
	if err != nil {
		return nil, err
	}

	var out AcceptResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
