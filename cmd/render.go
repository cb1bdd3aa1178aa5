package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/apidocgen/pkg/action/render"
	options "github.com/cmmoran/apidocgen/pkg/render"
)

func init() {
	rootCmd.AddCommand(NewRenderCommand())
}

func NewRenderCommand() *cobra.Command {
	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "render API documentation",
		Long:  "Merge IR documents and render them as a cross-linked HTML or Markdown document",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindFlags(c, "render")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			var cfg struct {
				Render options.Options `mapstructure:"render"`
			}
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("decode render options: %w", err)
			}
			out, err := render.Generate(c.Context(), &cfg.Render, locations(), slog.Default())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "%s (%s)\n", out.Output, out.Summary)
			return err
		},
	}

	defaults := options.NewOptions()
	f := renderCmd.Flags()
	f.StringSliceP("classes-files", "c", nil, "classes IR documents (paths or s3:// URLs)")
	f.StringSliceP("endpoints-files", "e", nil, "endpoints IR documents (paths or s3:// URLs)")
	f.StringSlice("resolver-dirs", nil, "Go module directories used to resolve undocumented types")
	f.StringSlice("registry-files", nil, "YAML type registries used to resolve undocumented types")
	f.String("endpoint-prefix", "", "prefix prepended to every endpoint path")
	f.Bool("examples", defaults.Examples, "render example requests and responses")
	f.Bool("examples-ssl", defaults.ExamplesSSL, "use https in example URLs")
	f.String("example-host-port", "", "host:port used in example URLs")
	f.StringP("format", "f", defaults.Format, "output format (html, markdown)")
	f.StringP("output", "o", "", "output location, path or s3:// URL (default apidoc/rest.html or apidoc/rest.md)")
	f.String("title", defaults.Title, "document title")
	f.Bool("strict-merge", false, "fail when two inputs define the same class differently")
	f.Int("cache-size", 0, "resolver cache entries (0 for the default)")

	return renderCmd
}
