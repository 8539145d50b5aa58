// Package output persists the generated document to disk and optionally
// pushes it to a running Frigate instance.
package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
)

// Package-level logger for output events.
var logger = logging.ForService("output")

// WriteFile writes the document to path atomically: the content lands in a
// temporary file in the destination directory first and is renamed into
// place, so a crash mid-write never leaves a truncated config behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryFileIO).
			Context("operation", "create-directory").
			Context("path", dir).
			Build()
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryFileIO).
			Context("operation", "create-temp").
			Context("path", dir).
			Build()
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New(err).
			Component("output").
			Category(errors.CategoryFileIO).
			Context("operation", "write-temp").
			Context("path", tmpName).
			Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryFileIO).
			Context("operation", "close-temp").
			Context("path", tmpName).
			Build()
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryFileIO).
			Context("operation", "rename").
			Context("path", path).
			Build()
	}

	logger.Info("wrote configuration file", "path", path, "bytes", len(data))
	return nil
}

// Pusher uploads generated documents to a Frigate instance over its HTTP API.
type Pusher struct {
	baseURL string
	client  *http.Client
}

// NewPusher returns a pusher for the given Frigate base URL.
func NewPusher(baseURL string) *Pusher {
	return &Pusher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Push uploads the document via the config save endpoint. When restart is
// true and the save succeeded, Frigate is asked to restart so the new config
// takes effect.
func (p *Pusher) Push(ctx context.Context, data []byte, restart bool) error {
	saveURL := p.baseURL + "/api/config/save"
	if err := p.post(ctx, saveURL, "text/plain", data); err != nil {
		return err
	}
	logger.Info("pushed configuration", "url", saveURL, "bytes", len(data))

	if restart {
		restartURL := p.baseURL + "/api/restart"
		if err := p.post(ctx, restartURL, "", nil); err != nil {
			return err
		}
		logger.Info("requested restart", "url", restartURL)
	}
	return nil
}

func (p *Pusher) post(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryHTTP).
			Context("url", url).
			Build()
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.New(err).
			Component("output").
			Category(errors.CategoryHTTP).
			Context("url", url).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The response body usually carries the validation error from Frigate.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))).
			Component("output").
			Category(errors.CategoryHTTP).
			Context("url", url).
			Context("status", fmt.Sprintf("%d", resp.StatusCode)).
			Build()
	}
	return nil
}
