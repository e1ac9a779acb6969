// Package pdfmeta reads title and author from a PDF's document information
// dictionary.
package pdfmeta

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/ledongthuc/pdf"
)

type Metadata struct {
	Title  string
	Author *string
}

// Extract parses data as a PDF. A missing or blank title becomes
// models.UntitledPaper and a missing author stays nil. Anything that is not
// a readable PDF is a bad request.
func Extract(data []byte) (meta Metadata, err error) {
	defer func() {
		// the parser panics on some malformed inputs
		if r := recover(); r != nil {
			meta, err = Metadata{}, fmt.Errorf("%w: invalid PDF: %v", common.ErrorBadRequest, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: invalid PDF: %v", common.ErrorBadRequest, err)
	}

	info := r.Trailer().Key("Info")

	meta.Title = models.UntitledPaper
	if title := clean(info.Key("Title").Text()); title != "" {
		meta.Title = title
	}
	if author := clean(info.Key("Author").Text()); author != "" {
		meta.Author = &author
	}
	return meta, nil
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
