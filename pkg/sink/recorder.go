package sink

import (
	"strconv"
	"strings"
)

// Event is one recorded primitive. Arg holds the text, name, target or level.
type Event struct {
	Op  string
	Arg string
}

func (e Event) String() string {
	if e.Arg == "" {
		return e.Op
	}
	return e.Op + "(" + e.Arg + ")"
}

// Recorder records every primitive it receives. It is meant for tests.
type Recorder struct {
	Events []Event
	Closed bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) add(op, arg string) { r.Events = append(r.Events, Event{Op: op, Arg: arg}) }

func level(l int) string { return strconv.Itoa(l) }

func (r *Recorder) Section(l int)         { r.add("section", level(l)) }
func (r *Recorder) SectionEnd(l int)      { r.add("section_", level(l)) }
func (r *Recorder) SectionTitle(l int)    { r.add("title", level(l)) }
func (r *Recorder) SectionTitleEnd(l int) { r.add("title_", level(l)) }

func (r *Recorder) Anchor(name string) { r.add("anchor", name) }
func (r *Recorder) AnchorEnd()         { r.add("anchor_", "") }
func (r *Recorder) Link(target string) { r.add("link", target) }
func (r *Recorder) LinkEnd()           { r.add("link_", "") }

func (r *Recorder) Text(s string)    { r.add("text", s) }
func (r *Recorder) RawText(s string) { r.add("raw", s) }

func (r *Recorder) Paragraph()         { r.add("p", "") }
func (r *Recorder) ParagraphEnd()      { r.add("p_", "") }
func (r *Recorder) List()              { r.add("list", "") }
func (r *Recorder) ListEnd()           { r.add("list_", "") }
func (r *Recorder) ListItem()          { r.add("item", "") }
func (r *Recorder) ListItemEnd()       { r.add("item_", "") }
func (r *Recorder) DefinitionList()    { r.add("dl", "") }
func (r *Recorder) DefinitionListEnd() { r.add("dl_", "") }
func (r *Recorder) DefinedTerm()       { r.add("dt", "") }
func (r *Recorder) DefinedTermEnd()    { r.add("dt_", "") }
func (r *Recorder) Definition()        { r.add("dd", "") }
func (r *Recorder) DefinitionEnd()     { r.add("dd_", "") }
func (r *Recorder) Bold()              { r.add("b", "") }
func (r *Recorder) BoldEnd()           { r.add("b_", "") }
func (r *Recorder) Monospaced()        { r.add("code", "") }
func (r *Recorder) MonospacedEnd()     { r.add("code_", "") }
func (r *Recorder) Verbatim()          { r.add("pre", "") }
func (r *Recorder) VerbatimEnd()       { r.add("pre_", "") }

func (r *Recorder) LineBreak()        { r.add("br", "") }
func (r *Recorder) NonBreakingSpace() { r.add("nbsp", "") }

func (r *Recorder) Flush() error { return nil }
func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// String concatenates every text and raw text argument in order.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, e := range r.Events {
		if e.Op == "text" || e.Op == "raw" {
			b.WriteString(e.Arg)
		}
	}
	return b.String()
}

// Ops returns the events rendered as strings, for sequence comparisons.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

// Count returns how many events match op and arg.
func (r *Recorder) Count(op, arg string) int {
	n := 0
	for _, e := range r.Events {
		if e.Op == op && e.Arg == arg {
			n++
		}
	}
	return n
}
