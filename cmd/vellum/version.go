package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vellum/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show vellum build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output flag: %w", err)
			}
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versionPayload{
					Tool:      "vellum",
					Version:   version.Version,
					GitCommit: version.GitCommit,
					BuildDate: version.BuildDate,
				})
			case "pretty":
				g, err := readGlobalOptions(cmd)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), version.Info(g.color))
				return nil
			default:
				return fmt.Errorf("unsupported output %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().String("output", "pretty", "output format (pretty|json)")
	return cmd
}
