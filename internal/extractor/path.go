package extractor

import (
	"fmt"
	"strings"
)

// JoinPath joins a resource base path and a method path template with
// exactly one separating slash. The base is normalized to start with a
// slash; an empty methodPath (nil in the IR) yields the base unchanged.
func JoinPath(basePath string, methodPath *string) string {
	root := basePath
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}

	if methodPath == nil {
		return root
	}
	mp := *methodPath

	// one delimiting slash between them: join directly
	if strings.HasSuffix(root, "/") != strings.HasPrefix(mp, "/") {
		return root + mp
	}
	// two slashes: trim one
	if strings.HasSuffix(root, "/") {
		return root + mp[1:]
	}
	// no slashes: add one
	return root + "/" + mp
}

// ParseExampleArgs parses "k=v|k=v" into a map. Each entry is split on its
// first '=' only; an entry without '=' is an error.
func ParseExampleArgs(spec string) (map[string]string, error) {
	out := make(map[string]string)
	for _, item := range strings.Split(spec, "|") {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("%w: item %q in %q missing = sign", ErrMalformedExampleArgs, item, spec)
		}
		out[key] = value
	}
	return out, nil
}
