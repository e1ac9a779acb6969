package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/notesdoc"
)

// Notes replaces a paper's notes with the document in a JSON file. The file
// is checked locally before anything is sent.
func (a *App) Notes(ctx context.Context, args []string) error {
	doc, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	if err := notesdoc.Validate(doc); err != nil {
		return err
	}

	_, err = a.api.SaveNotes(ctx, args[0], json.RawMessage(doc))
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Notes saved")
	return nil
}
