// Package layout computes the widths of the reader's three panes (PDF,
// notes, summary) while the user drags the dividers between them.
//
// Pointer events only record the latest position. Frame, called once per
// display refresh, applies at most one recompute and pushes the result to a
// StyleWriter, so a burst of move events costs a single update. The Model
// is driven from one UI goroutine and is not safe for concurrent use.
package layout

// Divider identifies a drag handle.
type Divider int

const (
	// DividerPDF sits between the PDF pane and the notes pane.
	DividerPDF Divider = iota + 1
	// DividerNotes sits between the notes pane and the summary pane.
	DividerNotes
)

const (
	minPDF = 20.0
	maxPDF = 80.0
	// each of notes and summary keeps at least this share of what the PDF
	// pane leaves over
	minShare = 0.10
	maxShare = 1 - minShare
)

// Widths are percentages of the container and always sum to 100.
type Widths struct {
	PDF     float64
	Notes   float64
	Summary float64
}

// DefaultWidths gives the PDF half the container and splits the rest.
var DefaultWidths = Widths{PDF: 50, Notes: 25, Summary: 25}

// StyleWriter applies widths directly to the rendered panes.
type StyleWriter interface {
	SetWidths(Widths)
}

type pointer struct {
	x, left, width float64
}

type Model struct {
	widths   Widths
	dragging [2]bool
	pending  *pointer
	out      StyleWriter
}

func New(out StyleWriter) *Model {
	return &Model{widths: DefaultWidths, out: out}
}

func (m *Model) Widths() Widths { return m.widths }

func (m *Model) Dragging() bool { return m.dragging[0] || m.dragging[1] }

func (m *Model) PointerDown(d Divider) {
	switch d {
	case DividerPDF, DividerNotes:
		m.dragging[d-1] = true
	}
}

// PointerMove records the pointer position relative to the container.
// Nothing is recomputed until the next Frame.
func (m *Model) PointerMove(x, containerLeft, containerWidth float64) {
	if !m.Dragging() || containerWidth <= 0 {
		return
	}
	m.pending = &pointer{x: x, left: containerLeft, width: containerWidth}
}

func (m *Model) PointerUp() { m.release() }

func (m *Model) PointerLeave() { m.release() }

func (m *Model) release() {
	m.dragging = [2]bool{}
	m.pending = nil
}

// Frame applies the latest recorded position, if any, and reports whether
// the widths were written.
func (m *Model) Frame() bool {
	p := m.pending
	if p == nil || !m.Dragging() {
		return false
	}
	m.pending = nil

	switch {
	case m.dragging[DividerPDF-1]:
		m.widths = dragPDF(m.widths, p)
	case m.dragging[DividerNotes-1]:
		m.widths = dragNotes(m.widths, p)
	}

	if m.out != nil {
		m.out.SetWidths(m.widths)
	}
	return true
}

func dragPDF(w Widths, p *pointer) Widths {
	pdf := clamp((p.x-p.left)/p.width*100, minPDF, maxPDF)
	rest := 100 - pdf

	share := 0.5
	if sum := w.Notes + w.Summary; sum > 0 {
		share = clamp(w.Notes/sum, minShare, maxShare)
	}

	notes := rest * share
	return Widths{PDF: pdf, Notes: notes, Summary: rest - notes}
}

func dragNotes(w Widths, p *pointer) Widths {
	rest := 100 - w.PDF
	restLeft := p.left + p.width*w.PDF/100
	restWidth := p.width * rest / 100

	share := clamp((p.x-restLeft)/restWidth, minShare, maxShare)
	notes := rest * share
	return Widths{PDF: w.PDF, Notes: notes, Summary: rest - notes}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
