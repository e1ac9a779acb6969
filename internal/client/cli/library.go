package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/client/models"
)

func authorOf(p models.Paper) string {
	if p.Author == nil || *p.Author == "" {
		return "unknown author"
	}
	return *p.Author
}

func (a *App) Libs(ctx context.Context, _ []string) error {
	list, err := a.api.ListCategories(ctx)
	a.persist()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No libraries yet. Create one with 'newlib'.")
		return nil
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%s  %-24s %s", c.ID, c.Name, c.Description))
	}
	return nil
}

func (a *App) NewLib(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Library name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	color, err := getSimpleText(a.reader, "Color scheme (optional)", a.out)
	if err != nil {
		return err
	}

	c, err := a.api.CreateCategory(ctx, models.CategoryInput{Name: name, Description: description, ColorScheme: color})
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Created library", c.ID)
	return nil
}

func (a *App) ShowLib(ctx context.Context, args []string) error {
	d, err := a.api.GetCategory(ctx, args[0])
	a.persist()
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", d.Name, d.ColorScheme))
	if d.Description != "" {
		printlnFn(d.Description)
	}
	if len(d.Papers) == 0 {
		printlnFn("No papers yet.")
		return nil
	}
	for _, p := range d.Papers {
		printlnFn(fmt.Sprintf("  %s  %s, %s", p.ID, p.Name, authorOf(p)))
	}
	return nil
}

// EditLib asks for each field; an empty answer keeps the current value.
func (a *App) EditLib(ctx context.Context, args []string) error {
	var patch models.CategoryPatch
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"New name (empty to keep)", &patch.Name},
		{"New description (empty to keep)", &patch.Description},
		{"New color scheme (empty to keep)", &patch.ColorScheme},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if patch.Name == nil && patch.Description == nil && patch.ColorScheme == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	_, err := a.api.UpdateCategory(ctx, args[0], patch)
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Library updated")
	return nil
}

func (a *App) DelLib(ctx context.Context, args []string) error {
	if !confirm(a.reader, "Delete library "+args[0]+" and all its papers?", a.out) {
		return nil
	}
	err := a.api.DeleteCategory(ctx, args[0])
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Library deleted")
	return nil
}

func (a *App) AddPaper(ctx context.Context, args []string) error {
	p, err := a.api.CreatePaper(ctx, args[0], args[1])
	a.persist()
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Added %s: %s, %s", p.ID, p.Name, authorOf(*p)))
	return nil
}

// Upload stores a local PDF and creates a paper from it.
func (a *App) Upload(ctx context.Context, args []string) error {
	fileURL, err := a.api.UploadPDF(ctx, args[1])
	if err != nil {
		a.persist()
		return err
	}
	return a.AddPaper(ctx, []string{args[0], fileURL})
}

func (a *App) Paper(ctx context.Context, args []string) error {
	p, err := a.api.GetPaper(ctx, args[0])
	a.persist()
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s, %s (%s)", p.Name, authorOf(p.Paper), p.ColorScheme))
	printlnFn(p.URL)
	if len(p.Notes) == 0 {
		printlnFn("No notes.")
		return nil
	}
	printlnFn("Notes:")
	printlnFn(strings.TrimSpace(string(p.Notes[0].Content)))
	return nil
}

func (a *App) Color(ctx context.Context, args []string) error {
	color := args[1]
	_, err := a.api.UpdatePaper(ctx, args[0], models.PaperPatch{ColorScheme: &color})
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Paper updated")
	return nil
}

func (a *App) DelPaper(ctx context.Context, args []string) error {
	err := a.api.DeletePaper(ctx, args[0])
	a.persist()
	if err != nil {
		return err
	}
	printlnFn("Paper deleted")
	return nil
}
