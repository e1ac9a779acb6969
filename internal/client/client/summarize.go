package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/goccy/go-json"
)

type summarizeRequest struct {
	PageContent string `json:"pageContent"`
	PageNumber  int    `json:"pageNumber"`
}

// Summarize streams a summary of pageContent, calling onChunk for every
// piece of text as it arrives. The whole exchange is cut off after the
// summarize timeout; the connection is then dropped and
// common.ErrorUpstreamTimeout returned.
func (c *HTTPClient) Summarize(ctx context.Context, pageContent string, pageNumber int, onChunk func(string)) error {
	if c.summarizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.summarizeTimeout)
		defer cancel()
	}

	payload, err := json.Marshal(summarizeRequest{PageContent: pageContent, PageNumber: pageNumber})
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/summarize", payload, true)
	if err != nil {
		return timeoutOr(ctx, err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			var text string
			text, pending = splitUTF8(pending)
			if text != "" {
				onChunk(text)
			}
		}
		if errors.Is(rerr, io.EOF) {
			if len(pending) > 0 {
				onChunk(string(pending))
			}
			return nil
		}
		if rerr != nil {
			return timeoutOr(ctx, rerr)
		}
	}
}

func timeoutOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: summary did not finish in time", common.ErrorUpstreamTimeout)
	}
	return err
}

// splitUTF8 returns the longest prefix of b that does not end inside a
// multi-byte sequence, and the remaining bytes.
func splitUTF8(b []byte) (string, []byte) {
	cut := len(b)
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				cut = i
			}
			break
		}
	}
	rest := append([]byte(nil), b[cut:]...)
	return string(b[:cut]), rest
}
