// Package notesdoc validates and edits the rich-text notes documents stored
// with papers. A document is a JSON object whose root carries a string
// "type" (normally "doc") and whose "content" is an array of nodes.
package notesdoc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/goccy/go-json"
)

// MaxBytes bounds the serialized size of a notes document.
const MaxBytes = 1_000_000

// Validate checks size, JSON well-formedness and the root "type".
func Validate(doc []byte) error {
	if len(doc) > MaxBytes {
		return fmt.Errorf("%w: notes exceed %d bytes", common.ErrorBadRequest, MaxBytes)
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: notes are not valid JSON", common.ErrorBadRequest)
	}
	if first := bytes.TrimSpace(doc); len(first) == 0 || first[0] != '{' {
		return fmt.Errorf("%w: notes must be a JSON object", common.ErrorBadRequest)
	}

	value, dataType, _, err := jsonparser.Get(doc, "type")
	if err != nil || dataType != jsonparser.String || len(value) == 0 {
		return fmt.Errorf("%w: notes need a string \"type\" at the root", common.ErrorBadRequest)
	}
	return nil
}

type node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// AppendSummary adds a "Page N Summary" heading and a paragraph holding
// summary after the existing content. Existing nodes are copied verbatim.
// Empty or unusable input starts a fresh document.
func AppendSummary(existing []byte, pageNumber int, summary string) ([]byte, error) {
	added := []node{
		{
			Type:    "heading",
			Attrs:   map[string]any{"level": 2},
			Content: []node{{Type: "text", Text: "Page " + strconv.Itoa(pageNumber) + " Summary"}},
		},
		{
			Type:    "paragraph",
			Content: []node{{Type: "text", Text: summary}},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":"doc","content":[`)

	n := 0
	if content, dataType, _, err := jsonparser.Get(existing, "content"); err == nil && dataType == jsonparser.Array && json.Valid(existing) {
		_, err = jsonparser.ArrayEach(content, func(value []byte, _ jsonparser.ValueType, _ int, _ error) {
			if n > 0 {
				buf.WriteByte(',')
			}
			buf.Write(value)
			n++
		})
		if err != nil {
			return nil, fmt.Errorf("read existing notes: %w", err)
		}
	}

	for _, a := range added {
		b, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(b)
		n++
	}

	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}
