package sink

import (
	"io"
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`&`, `&amp;`,
	`#`, `\#`,
	`|`, `\|`,
)

// Markdown writes CommonMark. Anchors are emitted as inline <a id> tags and
// code spans as <code> so links inside them stay live.
type Markdown struct {
	w *writer

	links    []string
	depth    int  // list nesting
	paras    int  // paragraphs opened in the current list item
	verbatim bool // inside a fenced block
	last     byte
}

func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{w: newWriter(w), last: '\n'}
}

func (m *Markdown) write(s string) {
	if s == "" {
		return
	}
	m.w.write(s)
	m.last = s[len(s)-1]
}

// line ends the current line if anything is on it.
func (m *Markdown) line() {
	if m.last != '\n' {
		m.write("\n")
	}
}

// block starts a new block separated by a blank line.
func (m *Markdown) block() {
	m.line()
	if m.depth == 0 {
		m.write("\n")
	}
}

func (m *Markdown) Section(int)    {}
func (m *Markdown) SectionEnd(int) {}
func (m *Markdown) SectionTitle(level int) {
	if level < 1 {
		level = 1
	}
	m.block()
	m.write(strings.Repeat("#", level) + " ")
}
func (m *Markdown) SectionTitleEnd(int) { m.write("\n") }

func (m *Markdown) Anchor(name string) { m.write(`<a id="` + name + `">`) }
func (m *Markdown) AnchorEnd()         { m.write("</a>") }
func (m *Markdown) Link(target string) {
	m.links = append(m.links, target)
	m.write("[")
}
func (m *Markdown) LinkEnd() {
	if len(m.links) == 0 {
		return
	}
	target := m.links[len(m.links)-1]
	m.links = m.links[:len(m.links)-1]
	m.write("](" + target + ")")
}

func (m *Markdown) Text(s string) {
	if m.verbatim {
		m.write(s)
		return
	}
	m.write(markdownEscaper.Replace(s))
}
func (m *Markdown) RawText(s string) { m.write(s) }

// Paragraph inside a list item continues the item: later paragraphs are
// separated by a blank line and indented to the item's content column.
func (m *Markdown) Paragraph() {
	if m.depth == 0 {
		m.block()
		return
	}
	if m.paras > 0 {
		m.write("\n\n" + strings.Repeat("  ", m.depth))
	}
	m.paras++
}
func (m *Markdown) ParagraphEnd() {
	if m.depth == 0 {
		m.line()
	}
}

func (m *Markdown) List() {
	if m.depth == 0 {
		m.block()
	} else {
		m.line()
	}
	m.depth++
}
func (m *Markdown) ListEnd() {
	if m.depth > 0 {
		m.depth--
	}
	m.line()
}
func (m *Markdown) ListItem() {
	m.line()
	m.paras = 0
	m.write(strings.Repeat("  ", max(m.depth-1, 0)) + "- ")
}
func (m *Markdown) ListItemEnd() { m.line() }

func (m *Markdown) DefinitionList()    { m.List() }
func (m *Markdown) DefinitionListEnd() { m.ListEnd() }
func (m *Markdown) DefinedTerm()       { m.ListItem() }
func (m *Markdown) DefinedTermEnd()    {}
func (m *Markdown) Definition()        { m.write(": ") }
func (m *Markdown) DefinitionEnd()     {}

func (m *Markdown) Bold()          { m.write("**") }
func (m *Markdown) BoldEnd()       { m.write("**") }
func (m *Markdown) Monospaced()    { m.write("<code>") }
func (m *Markdown) MonospacedEnd() { m.write("</code>") }
func (m *Markdown) Verbatim() {
	m.block()
	m.write("```\n")
	m.verbatim = true
}
func (m *Markdown) VerbatimEnd() {
	m.verbatim = false
	m.line()
	m.write("```\n")
}

func (m *Markdown) LineBreak()        { m.write("\\\n") }
func (m *Markdown) NonBreakingSpace() { m.write("&nbsp;") }

func (m *Markdown) Flush() error { return m.w.flush() }
func (m *Markdown) Close() error {
	m.line()
	return m.w.flush()
}
