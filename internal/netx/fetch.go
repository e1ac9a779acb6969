package netx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

// ValidatePDFURL accepts only absolute https URLs. Unless allowLocal is set,
// localhost and loopback or unspecified IP literals are refused.
func ValidatePDFURL(raw string, allowLocal bool) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL", common.ErrorBadRequest)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only https URLs are allowed", common.ErrorBadRequest)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: URL has no host", common.ErrorBadRequest)
	}
	if !allowLocal && isLocalHost(host) {
		return nil, fmt.Errorf("%w: local addresses are not allowed", common.ErrorBadRequest)
	}
	return u, nil
}

func isLocalHost(host string) bool {
	h := strings.ToLower(strings.TrimSuffix(host, "."))
	if h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return true
	}
	ip := net.ParseIP(h)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// Fetcher downloads PDFs with a hard size cap.
type Fetcher struct {
	client     *http.Client
	maxBytes   int64
	allowLocal bool
}

// NewFetcher uses client as is; the caller sets its Timeout.
func NewFetcher(client *http.Client, maxBytes int64, allowLocal bool) *Fetcher {
	return &Fetcher{client: client, maxBytes: maxBytes, allowLocal: allowLocal}
}

// Fetch returns the PDF body. Nothing beyond maxBytes+1 bytes is read.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := ValidatePDFURL(rawURL, f.allowLocal)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL", common.ErrorBadRequest)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch PDF: %v", common.ErrorBadRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: failed to fetch PDF: %s", common.ErrorBadRequest, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "pdf") {
		return nil, fmt.Errorf("%w: URL does not point to a PDF (content type %q)", common.ErrorBadRequest, ct)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, f.tooLarge()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PDF: %v", common.ErrorBadRequest, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, f.tooLarge()
	}
	return body, nil
}

func (f *Fetcher) tooLarge() error {
	return fmt.Errorf("%w: PDF too large (max %dMB)", common.ErrorPayloadTooLarge, f.maxBytes>>20)
}
