package render

import (
	"regexp"
	"strings"

	"github.com/cmmoran/apidocgen/pkg/sink"
)

var linkPattern = regexp.MustCompile(`\{@link ([^}]*)\}`)

// writeDoc renders doc as one or more paragraphs. Whitespace-only lines
// separate paragraphs and {@link X} references become code spans. Text is
// passed through unescaped.
func writeDoc(s sink.Sink, doc *string) {
	s.Paragraph()
	if doc != nil {
		for i, para := range paragraphs(*doc) {
			if i > 0 {
				s.ParagraphEnd()
				s.Paragraph()
			}
			writeLinked(s, para)
		}
	}
	s.ParagraphEnd()
}

// paragraphs splits doc at whitespace-only lines. Consecutive blank lines
// each produce a boundary, so empty paragraphs are kept.
func paragraphs(doc string) []string {
	var (
		out []string
		cur []string
	)
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, strings.Join(cur, "\n"))
			cur = cur[:0]
			continue
		}
		cur = append(cur, line)
	}
	return append(out, strings.Join(cur, "\n"))
}

func writeLinked(s sink.Sink, text string) {
	last := 0
	for _, loc := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			s.RawText(text[last:loc[0]])
		}
		s.Monospaced()
		s.RawText(strings.TrimPrefix(text[loc[2]:loc[3]], "#"))
		s.MonospacedEnd()
		last = loc[1]
	}
	if last < len(text) {
		s.RawText(text[last:])
	}
}
