package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/apidocgen/pkg/action/snapshot"
)

const defaultManifest = "apidoc/manifest.yaml"

func init() {
	rootCmd.AddCommand(NewSnapshotCommand(), NewDiffCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath, name, snapshotVersion string

	var snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "record an IR snapshot",
		Long:  "Extract the current IR into a versioned directory and record it in the manifest",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return bindFlags(c, "extract")
		},
		RunE: func(c *cobra.Command, _ []string) error {
			opts, err := extractOptions()
			if err != nil {
				return err
			}
			s, err := snapshot.Generate(c.Context(), opts, locations(), manifestPath, name, snapshotVersion, slog.Default())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "%s %s %s\n", s.Name, s.Version, s.RunID)
			return err
		},
	}
	addExtractFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "manifest location")
	snapshotCmd.Flags().StringVarP(&name, "name", "n", "api", "snapshot name")
	snapshotCmd.Flags().StringVarP(&snapshotVersion, "snapshot-version", "v", "", "snapshot version")
	_ = snapshotCmd.MarkFlagRequired("snapshot-version")

	var listManifest string
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, _ []string) error {
			m, err := snapshot.List(c.Context(), locations(), listManifest)
			if err != nil {
				return err
			}
			for _, s := range m.Snapshots {
				marker := " "
				switch s.Version {
				case m.CurrentVersion:
					marker = "*"
				case m.PreviousVersion:
					marker = "-"
				}
				if _, err = fmt.Fprintf(c.OutOrStdout(), "%s %s %s %s\n", marker, s.Name, s.Version, s.RunID); err != nil {
					return err
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listManifest, "manifest", "m", defaultManifest, "manifest location")
	snapshotCmd.AddCommand(listCmd)

	return snapshotCmd
}

func NewDiffCommand() *cobra.Command {
	var manifestPath string

	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff the current and previous snapshots",
		RunE: func(c *cobra.Command, _ []string) error {
			d, err := snapshot.DiffCurrentWithPrevious(c.Context(), locations(), manifestPath)
			if err != nil {
				return err
			}
			if d == "" {
				d = "no changes\n"
			}
			_, err = fmt.Fprint(c.OutOrStdout(), d)
			return err
		},
	}
	diffCmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "manifest location")
	return diffCmd
}
