// Package sink defines the document-emission primitives the renderer drives
// and the HTML, Markdown and recording implementations of them.
package sink

import (
	"bufio"
	"io"
)

// Sink receives a well-nested sequence of document primitives. Methods that
// end an element carry the End suffix. Write errors are sticky: the first one
// is kept and returned from Flush and Close.
type Sink interface {
	Section(level int)
	SectionEnd(level int)
	SectionTitle(level int)
	SectionTitleEnd(level int)

	Anchor(name string)
	AnchorEnd()
	Link(target string)
	LinkEnd()

	Text(s string)
	RawText(s string)

	Paragraph()
	ParagraphEnd()
	List()
	ListEnd()
	ListItem()
	ListItemEnd()
	DefinitionList()
	DefinitionListEnd()
	DefinedTerm()
	DefinedTermEnd()
	Definition()
	DefinitionEnd()
	Bold()
	BoldEnd()
	Monospaced()
	MonospacedEnd()
	Verbatim()
	VerbatimEnd()

	LineBreak()
	NonBreakingSpace()

	Flush() error
	Close() error
}

// writer is a buffered writer that remembers its first error.
type writer struct {
	w   *bufio.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriter(w)}
}

func (w *writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}
