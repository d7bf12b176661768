package gatesdk

import (
	"context"
	"net/http"
)

// GetDownloadCount returns the current download total.
func (c *Client) GetDownloadCount(ctx context.Context) (int64, error) {
	return c.downloads(ctx, http.MethodGet)
}

// RecordDownload counts one download and returns the new total.
func (c *Client) RecordDownload(ctx context.Context) (int64, error) {
	return c.downloads(ctx, http.MethodPost)
}

func (c *Client) downloads(ctx context.Context, method string) (int64, error) {
	resp, err := c.doRequest(ctx, method, DownloadsPath, nil, nil)
	if err != nil {
		return 0, err
	}

	var out DownloadsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Downloads, nil
}
