// ABOUTME: Lists the intents in the active catalog
// ABOUTME: Shows example patterns and response counts
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harper/vegra/internal/catalog"
	"github.com/harper/vegra/internal/models"
	"github.com/spf13/cobra"
)

type intentRow struct {
	Tag       models.Tag `json:"tag"`
	Patterns  int        `json:"patterns"`
	Responses int        `json:"responses"`
	Example   string     `json:"example,omitempty"`
}

// NewIntentsCmd creates the intents command
func NewIntentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intents",
		Short: "List catalog intents",
		Long: `List the intents the assistant can resolve.

Examples:
  vegra intents
  vegra intents --format json
  vegra intents export -o intents.yaml`,
		RunE: runIntents,
	}

	cmd.AddCommand(newIntentsExportCmd())

	return cmd
}

func newIntentsExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog to a file",
		Long: `Write the active catalog to a JSON or YAML file.

The format follows the file extension (.json, .yaml, .yml). Edit the
copy, point catalog_path at it, and run 'vegra train'.

Examples:
  vegra intents export -o intents.yaml
  vegra intents export -o intents.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			if err := catalog.Write(output, cat); err != nil {
				return fmt.Errorf("exporting catalog: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d intents to %s\n", len(cat.Intents), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.json, .yaml, .yml)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runIntents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	return printIntents(cmd, cat)
}

func printIntents(cmd *cobra.Command, cat *models.Catalog) error {
	rows := make([]intentRow, 0, len(cat.Intents))
	for _, in := range cat.Intents {
		row := intentRow{Tag: in.Tag, Patterns: len(in.Patterns), Responses: len(in.Responses)}
		if len(in.Patterns) > 0 {
			row.Example = in.Patterns[0]
		}
		rows = append(rows, row)
	}

	if useJSON() {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tPATTERNS\tRESPONSES\tEXAMPLE")
	fmt.Fprintln(w, strings.Repeat("─", 3)+"\t"+strings.Repeat("─", 8)+"\t"+strings.Repeat("─", 9)+"\t"+strings.Repeat("─", 7))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Tag, r.Patterns, r.Responses, truncate(r.Example, 40))
	}
	return w.Flush()
}
