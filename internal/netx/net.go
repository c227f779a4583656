// Package netx moves backup payloads to and from presigned object storage URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ContentType is sent with every backup upload. Presigned PUT URLs are
// signed against it, so the server must presign with the same value.
const ContentType = "application/json"

// MaxDownloadSize caps the backup body read from storage.
const MaxDownloadSize = 8 << 20

// Transfer performs presigned uploads and downloads. The zero value uses
// http.DefaultClient.
type Transfer struct {
	HTTP *http.Client
}

func (t *Transfer) client() *http.Client {
	if t == nil || t.HTTP == nil {
		return http.DefaultClient
	}
	return t.HTTP
}

// Upload PUTs body to a presigned URL.
func (t *Transfer) Upload(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ContentType)
	req.ContentLength = int64(len(body))

	resp, err := t.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// Download GETs the object behind a presigned URL.
func (t *Transfer) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("download failed: body exceeds %d bytes", MaxDownloadSize)
	}
	return data, nil
}
