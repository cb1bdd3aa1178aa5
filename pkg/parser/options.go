package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidTagFilter is returned when an exclude-tags entry is not "key:value".
var ErrInvalidTagFilter = errors.New("invalid tag filter")

// TagFilter excludes a field when the struct tag matches Key and contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Options control source discovery and IR output.
//
// InDir             – module directory to load packages from
// Patterns          – package patterns relative to InDir (default "./...")
// OutDir            – directory (or s3://bucket/prefix) for IR documents
// ClassesFile       – name of the TransferClass document
// EndpointsFile     – name of the ResourceMethod document
// DebugFile         – name of the extraction diagnostics document
// ExcludeDeprecated – skip types whose doc comment marks them deprecated
// ExcludeTypes      – type names to skip (case-insensitive, simple names)
// ExcludeByTags     – filters to skip properties by struct tag
type Options struct {
	InDir             string      `json:"in_dir,omitempty" yaml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	Patterns          []string    `json:"patterns,omitempty" yaml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
	OutDir            string      `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ClassesFile       string      `json:"classes_file,omitempty" yaml:"classes_file,omitempty" mapstructure:"classes_file,omitempty"`
	EndpointsFile     string      `json:"endpoints_file,omitempty" yaml:"endpoints_file,omitempty" mapstructure:"endpoints_file,omitempty"`
	DebugFile         string      `json:"debug_file,omitempty" yaml:"debug_file,omitempty" mapstructure:"debug_file,omitempty"`
	ExcludeDeprecated bool        `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeTypes      []string    `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeByTags     []TagFilter `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:         ".",
		Patterns:      []string{"./..."},
		OutDir:        "apidoc",
		ClassesFile:   "classes.json",
		EndpointsFile: "endpoints.json",
		DebugFile:     "debug.json",
	}
}

// Normalize fills defaults and parses "key:value" exclude-tag strings.
func (o *Options) Normalize(excludeByTagsStrings ...string) error {
	for _, s := range excludeByTagsStrings {
		key, value, ok := strings.Cut(s, ":")
		if !ok || key == "" {
			return fmt.Errorf("%w: %q", ErrInvalidTagFilter, s)
		}
		o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: strings.Trim(value, `"`)})
	}
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if len(o.Patterns) == 0 {
		o.Patterns = []string{"./..."}
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "apidoc"
	}
	if len(o.ClassesFile) == 0 {
		o.ClassesFile = "classes.json"
	}
	if len(o.EndpointsFile) == 0 {
		o.EndpointsFile = "endpoints.json"
	}
	if len(o.DebugFile) == 0 {
		o.DebugFile = "debug.json"
	}
	return nil
}

// NoDebugFile as DebugFile turns the diagnostics document off.
const NoDebugFile = "-"

// WritesDebug reports whether the diagnostics document is written.
func (o *Options) WritesDebug() bool {
	return o.DebugFile != "" && o.DebugFile != NoDebugFile
}

// IsExcludedType reports whether a simple type name is listed in ExcludeTypes.
func (o *Options) IsExcludedType(name string) bool {
	for _, ex := range o.ExcludeTypes {
		if strings.EqualFold(ex, name) {
			return true
		}
	}
	return false
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option         { return func(o *Options) { o.InDir = d } }
func WithPatterns(p ...string) Option   { return func(o *Options) { o.Patterns = append(o.Patterns, p...) } }
func WithOutDir(d string) Option        { return func(o *Options) { o.OutDir = d } }
func WithClassesFile(f string) Option   { return func(o *Options) { o.ClassesFile = f } }
func WithEndpointsFile(f string) Option { return func(o *Options) { o.EndpointsFile = f } }
func WithDebugFile(f string) Option     { return func(o *Options) { o.DebugFile = f } }
func WithExcludeDeprecated() Option     { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{key, val}) }
}
