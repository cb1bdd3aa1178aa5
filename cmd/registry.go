package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/apidocgen/internal/resolver"
)

func init() {
	rootCmd.AddCommand(NewRegistryCommand())
}

func NewRegistryCommand() *cobra.Command {
	var (
		from          []string
		pkgName, name string
		out           string
	)

	var registryCmd = &cobra.Command{
		Use:   "registry",
		Short: "compile YAML type registries to Go",
		Long:  "Generate Go source declaring a static resolver built from one or more YAML type registries",
		RunE: func(c *cobra.Command, _ []string) error {
			locs := locations()
			var types []*resolver.StaticType
			for _, loc := range from {
				data, err := locs.Read(c.Context(), loc)
				if err != nil {
					return err
				}
				static, err := resolver.LoadStatic(data)
				if err != nil {
					return fmt.Errorf("%s: %w", loc, err)
				}
				types = append(types, static.Types()...)
			}

			var buf bytes.Buffer
			if err := resolver.GenerateRegistry(&buf, pkgName, name, types); err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err := c.OutOrStdout().Write(buf.Bytes())
				return err
			}
			return locs.Write(c.Context(), out, buf.Bytes())
		},
	}
	registryCmd.Flags().StringSliceVar(&from, "from", nil, "YAML registry files")
	registryCmd.Flags().StringVar(&pkgName, "package", "registry", "package of the generated file")
	registryCmd.Flags().StringVar(&name, "var", "Types", "name of the generated variable")
	registryCmd.Flags().StringVarP(&out, "output", "o", "", "output file (stdout when empty)")
	_ = registryCmd.MarkFlagRequired("from")

	return registryCmd
}
