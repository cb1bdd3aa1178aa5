package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidOptions is returned by Validate.
var ErrInvalidOptions = errors.New("invalid render options")

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var validate = validator.New()

// Options control how IR documents are loaded and rendered.
//
// ClassesFiles / EndpointsFiles – IR document locations (paths or s3:// URLs)
// ResolverDirs                  – Go module directories searched for undocumented types
// RegistryFiles                 – YAML static registries searched before ResolverDirs
// EndpointPrefix                – prepended to every rendered path and anchor
// Examples                      – render example request/response blocks
// ExamplesSSL / ExampleHostPort – scheme and host of example URLs
// StrictMerge                   – fail when two inputs define the same class
type Options struct {
	ClassesFiles    []string `json:"classes_files,omitempty" yaml:"classes_files,omitempty" mapstructure:"classes_files,omitempty" validate:"required_without=EndpointsFiles"`
	EndpointsFiles  []string `json:"endpoints_files,omitempty" yaml:"endpoints_files,omitempty" mapstructure:"endpoints_files,omitempty"`
	ResolverDirs    []string `json:"resolver_dirs,omitempty" yaml:"resolver_dirs,omitempty" mapstructure:"resolver_dirs,omitempty"`
	RegistryFiles   []string `json:"registry_files,omitempty" yaml:"registry_files,omitempty" mapstructure:"registry_files,omitempty"`
	EndpointPrefix  string   `json:"endpoint_prefix,omitempty" yaml:"endpoint_prefix,omitempty" mapstructure:"endpoint_prefix,omitempty"`
	Examples        bool     `json:"examples" yaml:"examples" mapstructure:"examples"`
	ExamplesSSL     bool     `json:"examples_ssl" yaml:"examples_ssl" mapstructure:"examples_ssl"`
	ExampleHostPort string   `json:"example_host_port,omitempty" yaml:"example_host_port,omitempty" mapstructure:"example_host_port,omitempty" validate:"required_if=Examples true"`
	Format          string   `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format,omitempty" validate:"oneof=html markdown"`
	Output          string   `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output,omitempty" validate:"required"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title,omitempty"`
	StrictMerge     bool     `json:"strict_merge,omitempty" yaml:"strict_merge,omitempty" mapstructure:"strict_merge,omitempty"`
	CacheSize       int      `json:"cache_size,omitempty" yaml:"cache_size,omitempty" mapstructure:"cache_size,omitempty" validate:"gte=0"`
}

func NewOptions() *Options {
	return &Options{
		Examples:    true,
		ExamplesSSL: true,
		Format:      FormatHTML,
		Output:      "apidoc/rest.html",
		Title:       "REST Endpoints And Transfer Classes",
	}
}

// Normalize fills defaults and trims the endpoint prefix of a trailing slash.
func (o *Options) Normalize() {
	if o.Format == "" {
		o.Format = FormatHTML
	}
	o.Format = strings.ToLower(o.Format)
	if o.Format == "md" {
		o.Format = FormatMarkdown
	}
	if o.Output == "" {
		if o.Format == FormatMarkdown {
			o.Output = "apidoc/rest.md"
		} else {
			o.Output = "apidoc/rest.html"
		}
	}
	o.EndpointPrefix = strings.TrimSuffix(o.EndpointPrefix, "/")
}

// Validate checks the options and reports every failing field.
func (o *Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "required_if", "required_without":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithClassesFiles(f ...string) Option   { return func(o *Options) { o.ClassesFiles = append(o.ClassesFiles, f...) } }
func WithEndpointsFiles(f ...string) Option { return func(o *Options) { o.EndpointsFiles = append(o.EndpointsFiles, f...) } }
func WithResolverDirs(d ...string) Option   { return func(o *Options) { o.ResolverDirs = append(o.ResolverDirs, d...) } }
func WithRegistryFiles(f ...string) Option  { return func(o *Options) { o.RegistryFiles = append(o.RegistryFiles, f...) } }
func WithEndpointPrefix(p string) Option    { return func(o *Options) { o.EndpointPrefix = p } }
func WithoutExamples() Option               { return func(o *Options) { o.Examples = false } }
func WithFormat(f string) Option            { return func(o *Options) { o.Format = f } }
func WithOutput(path string) Option         { return func(o *Options) { o.Output = path } }
func WithTitle(t string) Option             { return func(o *Options) { o.Title = t } }
func WithStrictMerge() Option               { return func(o *Options) { o.StrictMerge = true } }
func WithCacheSize(n int) Option            { return func(o *Options) { o.CacheSize = n } }

func WithExampleHost(hostPort string, ssl bool) Option {
	return func(o *Options) { o.ExampleHostPort, o.ExamplesSSL = hostPort, ssl }
}
