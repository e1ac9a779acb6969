package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/notesdoc"
)

// Summarize streams a summary of the page text in a file to the terminal
// and offers to append it to the paper's notes.
func (a *App) Summarize(ctx context.Context, args []string) error {
	paperID := args[0]
	page, err := strconv.Atoi(args[1])
	if err != nil || page < 1 {
		return fmt.Errorf("%w: page must be a positive number", common.ErrorBadRequest)
	}
	text, err := os.ReadFile(args[2])
	if err != nil {
		return err
	}

	var sb strings.Builder
	err = a.api.Summarize(ctx, string(text), page, func(chunk string) {
		sb.WriteString(chunk)
		fmt.Fprint(a.out, chunk)
	})
	fmt.Fprintln(a.out)
	a.persist()
	if err != nil {
		return err
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" || !confirm(a.reader, "Add to notes?", a.out) {
		return nil
	}
	return a.appendToNotes(ctx, paperID, page, summary)
}

func (a *App) appendToNotes(ctx context.Context, paperID string, page int, summary string) error {
	p, err := a.api.GetPaper(ctx, paperID)
	if err != nil {
		return err
	}

	var existing []byte
	if len(p.Notes) > 0 {
		existing = p.Notes[0].Content
	}

	doc, err := notesdoc.AppendSummary(existing, page, summary)
	if err != nil {
		return err
	}
	if err := notesdoc.Validate(doc); err != nil {
		return err
	}

	if _, err := a.api.SaveNotes(ctx, paperID, json.RawMessage(doc)); err != nil {
		return err
	}
	a.persist()
	printlnFn("Summary added to notes")
	return nil
}
