package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Filler renders a contract document from named field slots. The PDF layout
// itself lives behind this boundary.
type Filler interface {
	Fill(ctx context.Context, documentPath string, fields map[string]string) error
}

// HTTPFiller posts field maps to an external filler service.
type HTTPFiller struct {
	BaseURL string
	Client  *http.Client
}

type fillRequest struct {
	DocumentPath string            `json:"documentPath"`
	Fields       map[string]string `json:"fields"`
}

// Fill sends the document request and treats any non-2xx response as failure.
func (f HTTPFiller) Fill(ctx context.Context, documentPath string, fields map[string]string) error {
	if strings.TrimSpace(f.BaseURL) == "" {
		return fmt.Errorf("contract: filler base url not configured")
	}
	body, err := json.Marshal(fillRequest{DocumentPath: documentPath, Fields: fields})
	if err != nil {
		return fmt.Errorf("contract: marshal fill request: %w", err)
	}
	url := strings.TrimRight(f.BaseURL, "/") + "/fill"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contract: build fill request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("contract: fill request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("contract: filler returned status %d", resp.StatusCode)
	}
	return nil
}
