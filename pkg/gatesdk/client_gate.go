package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// IssueGateToken exchanges a captcha response for a gate token. An empty
// captchaToken is only accepted when the service has bypass enabled.
func (c *Client) IssueGateToken(ctx context.Context, captchaToken string) (*IssueResponse, error) {
	body, err := json.Marshal(IssueRequest{CaptchaToken: captchaToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, GatePath, bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var issued IssueResponse
	if err := decodeJSON(resp, &issued, http.StatusOK); err != nil {
		return nil, err
	}
	return &issued, nil
}

// GetCatalog reads the active catalog using gateToken.
func (c *Client) GetCatalog(ctx context.Context, gateToken string) ([]CatalogEntry, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, GatePath, nil, map[string]string{
		GateHeader: gateToken,
	})
	if err != nil {
		return nil, err
	}

	var catalog CatalogResponse
	if err := decodeJSON(resp, &catalog, http.StatusOK); err != nil {
		return nil, err
	}
	return catalog.Data, nil
}
