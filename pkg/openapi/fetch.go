package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FetchOptions configures Fetch.
type FetchOptions struct {
	// FileSystem resolves relative paths when set; otherwise the OS is used.
	FileSystem fs.FS
	// HTTPClient enables http(s) locations. Nil disables remote loading
	// unless AllowHTTP is set, in which case a client with Timeout is built.
	HTTPClient *http.Client
	AllowHTTP  bool
	Timeout    time.Duration
}

// Fetch reads an OpenAPI document from a file path, an fs.FS entry or an
// http(s) URL.
func Fetch(ctx context.Context, location string, opts FetchOptions) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		client := opts.HTTPClient
		if client == nil {
			if !opts.AllowHTTP {
				return nil, errors.New("openapi: http support disabled")
			}
			client = &http.Client{Timeout: opts.Timeout}
		}
		return fetchHTTP(ctx, client, location, opts.Timeout)
	}

	if opts.FileSystem != nil {
		data, err := fs.ReadFile(opts.FileSystem, location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	}

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("openapi: resolve %s: %w", location, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read body of %s: %w", url, err)
	}
	return data, nil
}
