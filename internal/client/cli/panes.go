package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/paperkeeper/internal/client/layout"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

// paneWriter renders the reader's pane widths as a status line.
type paneWriter struct{}

func (paneWriter) SetWidths(w layout.Widths) {
	printlnFn(formatPanes(w))
}

func formatPanes(w layout.Widths) string {
	return fmt.Sprintf("pdf %.0f%% | notes %.0f%% | summary %.0f%%", w.PDF, w.Notes, w.Summary)
}

// Layout shows or changes the reader's pane widths. The first argument moves
// the PDF divider to that percentage of the window, the second sets the
// notes pane width. Both go through the same clamping as a mouse drag.
func (a *App) Layout(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn(formatPanes(a.panes.Widths()))
		return nil
	}
	if args[0] == "reset" {
		a.panes = layout.New(paneWriter{})
		printlnFn(formatPanes(a.panes.Widths()))
		return nil
	}

	pdf, err := parsePercent(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		dragDivider(a.panes, layout.DividerPDF, pdf)
		return nil
	}

	notes, err := parsePercent(args[1])
	if err != nil {
		return err
	}
	dragDivider(a.panes, layout.DividerPDF, pdf)
	dragDivider(a.panes, layout.DividerNotes, a.panes.Widths().PDF+notes)
	return nil
}

// dragDivider replays one drag of d to x percent of a 100 wide window.
func dragDivider(m *layout.Model, d layout.Divider, x float64) {
	m.PointerDown(d)
	m.PointerMove(x, 0, 100)
	m.Frame()
	m.PointerUp()
}

func parsePercent(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: %q is not a percentage", common.ErrorBadRequest, s)
	}
	return v, nil
}
