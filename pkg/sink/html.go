package sink

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
)

// HTML writes an HTML fragment, or a complete page when a title is set.
type HTML struct {
	w     *writer
	title string
	open  bool
}

type HTMLOption func(*HTML)

// WithPage wraps the output in a standalone page with the given title.
func WithPage(title string) HTMLOption {
	return func(h *HTML) { h.title = title }
}

func NewHTML(w io.Writer, opts ...HTMLOption) *HTML {
	h := &HTML{w: newWriter(w)}
	for _, fn := range opts {
		fn(h)
	}
	return h
}

func (h *HTML) start() {
	if h.open || h.title == "" {
		h.open = true
		return
	}
	h.open = true
	h.w.write("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	h.w.write(html.EscapeString(h.title))
	h.w.write("</title>\n</head>\n<body>\n")
}

func (h *HTML) tag(s string) {
	h.start()
	h.w.write(s)
}

func heading(level int) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return "h" + strconv.Itoa(level)
}

func (h *HTML) Section(int)    { h.tag("<section>\n") }
func (h *HTML) SectionEnd(int) { h.tag("</section>\n") }
func (h *HTML) SectionTitle(level int) {
	h.tag("<" + heading(level) + ">")
}
func (h *HTML) SectionTitleEnd(level int) {
	h.tag("</" + heading(level) + ">\n")
}

func (h *HTML) Anchor(name string) { h.tag(`<a id="` + html.EscapeString(name) + `">`) }
func (h *HTML) AnchorEnd()         { h.tag("</a>") }
func (h *HTML) Link(target string) { h.tag(`<a href="` + html.EscapeString(target) + `">`) }
func (h *HTML) LinkEnd()           { h.tag("</a>") }

func (h *HTML) Text(s string)    { h.tag(html.EscapeString(s)) }
func (h *HTML) RawText(s string) { h.tag(s) }

func (h *HTML) Paragraph()         { h.tag("<p>") }
func (h *HTML) ParagraphEnd()      { h.tag("</p>\n") }
func (h *HTML) List()              { h.tag("<ul>\n") }
func (h *HTML) ListEnd()           { h.tag("</ul>\n") }
func (h *HTML) ListItem()          { h.tag("<li>") }
func (h *HTML) ListItemEnd()       { h.tag("</li>\n") }
func (h *HTML) DefinitionList()    { h.tag("<dl>\n") }
func (h *HTML) DefinitionListEnd() { h.tag("</dl>\n") }
func (h *HTML) DefinedTerm()       { h.tag("<dt>") }
func (h *HTML) DefinedTermEnd()    { h.tag("</dt>\n") }
func (h *HTML) Definition()        { h.tag("<dd>") }
func (h *HTML) DefinitionEnd()     { h.tag("</dd>\n") }
func (h *HTML) Bold()              { h.tag("<b>") }
func (h *HTML) BoldEnd()           { h.tag("</b>") }
func (h *HTML) Monospaced()        { h.tag("<code>") }
func (h *HTML) MonospacedEnd()     { h.tag("</code>") }
func (h *HTML) Verbatim()          { h.tag("<pre>") }
func (h *HTML) VerbatimEnd()       { h.tag("</pre>\n") }

func (h *HTML) LineBreak()        { h.tag("<br />\n") }
func (h *HTML) NonBreakingSpace() { h.tag("&nbsp;") }

func (h *HTML) Flush() error { return h.w.flush() }

func (h *HTML) Close() error {
	h.start()
	if h.title != "" {
		h.w.write("</body>\n</html>\n")
	}
	return h.w.flush()
}
