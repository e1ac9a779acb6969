package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type summarizeRequest struct {
	PageContent string `json:"pageContent"`
	PageNumber  int    `json:"pageNumber"`
}

// summarize streams plain-text chunks as they arrive. Errors before the
// first chunk get a JSON error response; later ones end the stream.
func (h *handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if !h.bind(c, &req) {
		return
	}

	started := false
	start := func() {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Header("Cache-Control", "no-cache")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Status(http.StatusOK)
		started = true
	}

	ctx := c.Request.Context()
	err := h.Summaries.Summarize(ctx, req.PageContent, req.PageNumber, func(chunk string) error {
		if !started {
			start()
		}
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})

	switch {
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		// client went away; there is nobody to answer
		h.logger.Debug(ctx, "summary request canceled", "started", started)
		c.Abort()
	case err != nil && !started:
		writeError(c, h.logger, err)
	case err != nil:
		h.logger.Warn(ctx, "summary stream aborted", "error", err)
	case !started:
		start()
		c.Writer.WriteHeaderNow()
	}
}
