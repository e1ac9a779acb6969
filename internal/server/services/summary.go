package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/server/summarizer"
)

// ChunkStream is a pull-based text stream.
type ChunkStream interface {
	Recv() (string, error)
	Close() error
}

type SummaryService struct {
	open        func(ctx context.Context, prompt string) (ChunkStream, error)
	maxDuration time.Duration
	logger      logging.Logger
}

func NewSummaryService(client *summarizer.Client, maxDuration time.Duration, logger logging.Logger) *SummaryService {
	return &SummaryService{
		open: func(ctx context.Context, prompt string) (ChunkStream, error) {
			s, err := client.Stream(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		maxDuration: maxDuration,
		logger:      logger.With("module", "summary"),
	}
}

// Summarize streams the summary of one page to emit, chunk by chunk. The
// upstream call is cut off after maxDuration with common.ErrorUpstreamTimeout.
// An emit error stops the stream and is returned as is.
func (s *SummaryService) Summarize(ctx context.Context, pageContent string, pageNumber int, emit func(string) error) error {
	if strings.TrimSpace(pageContent) == "" {
		return fmt.Errorf("%w: no page content provided", common.ErrorBadRequest)
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	ctx, cancel := context.WithTimeout(ctx, s.maxDuration)
	defer cancel()

	stream, err := s.open(ctx, summarizer.Prompt(pageContent, pageNumber))
	if err != nil {
		return s.classify(ctx, err)
	}
	defer stream.Close()

	chunks := 0
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			s.logger.Debug(ctx, "summary complete", "page", pageNumber, "chunks", chunks)
			return nil
		}
		if err != nil {
			return s.classify(ctx, err)
		}
		if err := emit(chunk); err != nil {
			return err
		}
		chunks++
	}
}

func (s *SummaryService) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: summarization exceeded %s", common.ErrorUpstreamTimeout, s.maxDuration)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("summarization failed: %w", err)
}
