package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/apidocgen/pkg/action/extract"
	"github.com/cmmoran/apidocgen/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewExtractCommand())
}

func NewExtractCommand() *cobra.Command {
	// extractCmd represents the apidocgen extract command
	var extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "extract API IR",
		Long:  "Parse annotated Go packages and write the classes, endpoints and debug IR documents",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindFlags(c, "extract")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			opts, err := extractOptions()
			if err != nil {
				return err
			}
			out, err := extract.Generate(c.Context(), opts, locations(), slog.Default())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "%s\n%s\n", out.Classes, out.Endpoints)
			return err
		},
	}
	addExtractFlags(extractCmd)
	return extractCmd
}

func addExtractFlags(c *cobra.Command) {
	defaults := parser.NewOptions()
	c.Flags().StringP("in-dir", "i", defaults.InDir, "module directory to scan")
	c.Flags().StringSliceP("patterns", "p", defaults.Patterns, "package patterns relative to the input directory")
	c.Flags().StringP("out-dir", "o", defaults.OutDir, "directory or s3://bucket/prefix for IR documents")
	c.Flags().String("classes-file", defaults.ClassesFile, "name of the classes document")
	c.Flags().String("endpoints-file", defaults.EndpointsFile, "name of the endpoints document")
	c.Flags().String("debug-file", defaults.DebugFile, "name of the extraction diagnostics document (- to skip it)")
	c.Flags().BoolP("exclude-deprecated", "d", false, "exclude types whose doc comment marks them deprecated")
	c.Flags().StringSliceP("exclude-types", "t", []string{}, "exclude named types")
	c.Flags().StringSliceP("exclude-tags", "T", []string{}, "exclude fields with matching tags, ex: gorm:\",embedded\"")
}

// extractOptions decodes the bound extract flags, config and environment.
func extractOptions() (*parser.Options, error) {
	var cfg struct {
		Extract parser.Options `mapstructure:"extract"`
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode extract options: %w", err)
	}
	if err := cfg.Extract.Normalize(viper.GetStringSlice("extract.exclude_tags")...); err != nil {
		return nil, err
	}
	return &cfg.Extract, nil
}
