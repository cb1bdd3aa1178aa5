// Package example synthesizes the example request and response blocks shown
// under an endpoint.
package example

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	ir "github.com/cmmoran/apidocgen/pkg/model"
)

// MediaTypeJSON is the only content type whose example bodies are canonicalized.
const MediaTypeJSON = "application/json"

var pathVariable = regexp.MustCompile(`\{([^}]*)\}`)

// Target is where example requests are addressed.
type Target struct {
	SSL      bool
	HostPort string
	Prefix   string
}

// URL returns scheme, host and prefix joined with path.
func (t Target) URL(path string) string {
	scheme := "http"
	if t.SSL {
		scheme = "https"
	}
	return scheme + "://" + t.HostPort + t.Prefix + path
}

// SubstitutePath replaces every {name} placeholder of m.Path with its example
// binding. Bound values are inserted literally and never rescanned.
func SubstitutePath(m *ir.ResourceMethod) (string, error) {
	var b strings.Builder
	last := 0
	for _, loc := range pathVariable.FindAllStringSubmatchIndex(m.Path, -1) {
		name := m.Path[loc[2]:loc[3]]
		value, ok := m.ExampleArgs[name]
		if !ok {
			return "", fmt.Errorf("%w: cannot find argument with name %s in example arguments that have %s on %s %s",
				ErrMissingExampleArg, name, strings.Join(sortedKeys(m.ExampleArgs), ","), m.Method, m.Path)
		}
		b.WriteString(m.Path[last:loc[0]])
		b.WriteString(value)
		last = loc[1]
	}
	b.WriteString(m.Path[last:])
	return b.String(), nil
}

// Canonicalize re-serializes raw JSON with sorted object keys and two-space
// indentation. Numbers keep their literal form.
func Canonicalize(raw string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", fmt.Errorf("%w: %w\n%s", ErrMalformedJSON, err, raw)
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("%w: trailing data\n%s", ErrMalformedJSON, raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("%w: %w\n%s", ErrMalformedJSON, err, raw)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RequestBlock builds the curl command for m against t. GET and POST omit
// the explicit method flag; a request body is only sent for non-GET methods
// and is canonicalized when the consumed type is JSON.
func RequestBlock(m *ir.ResourceMethod, t Target) (string, error) {
	path, err := SubstitutePath(m)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("curl \\\n")
	if m.Method != "GET" && m.Method != "POST" {
		b.WriteString("    -X" + m.Method + " \\\n")
	}
	if t.SSL {
		b.WriteString("    -E certinfo --cacert cacerts_file \\\n")
	}
	if m.ConsumesContentType != nil {
		b.WriteString("    -H \"" + *m.ConsumesContentType + "\" \\\n")
	}
	if m.Method != "GET" && m.ExampleRequest != nil {
		b.WriteString("    -d'")
		if ir.Deref(m.ConsumesContentType) == MediaTypeJSON {
			body, err := Canonicalize(*m.ExampleRequest)
			if err != nil {
				return "", fmt.Errorf("example request of %s %s: %w", m.Method, m.Path, err)
			}
			b.WriteString(body + "\n")
		} else {
			b.WriteString(*m.ExampleRequest)
		}
		b.WriteString("' \\\n")
	}
	b.WriteString("    " + t.URL(path))
	return b.String(), nil
}

// ResponseBlock returns the example response of m, canonicalized when the
// produced type is JSON. ok is false when m has no example response.
func ResponseBlock(m *ir.ResourceMethod) (text string, ok bool, err error) {
	if m.ExampleResponse == nil {
		return "", false, nil
	}
	if ir.Deref(m.ReturnContentType) != MediaTypeJSON {
		return *m.ExampleResponse, true, nil
	}
	text, err = Canonicalize(*m.ExampleResponse)
	if err != nil {
		return "", false, fmt.Errorf("example response of %s %s: %w", m.Method, m.Path, err)
	}
	return text, true, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
