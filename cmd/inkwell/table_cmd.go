package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/output"
	"github.com/raphi011/inkwell/internal/tabledef"
	"github.com/raphi011/inkwell/internal/ui/table"
)

// demoTable is rendered when no definition file is given.
const demoTable = `border = "rounded"
caption_bottom = "inkwell table demo"

[[columns]]
width = "expand"

[[columns]]
align = "right"

[[columns]]
align = "center"

[[header]]
cells = ["Widget", "Cells", "Status"]

[[body]]
cells = ["table", "spans", { text = "ready", style = { fg = "82" } }]

[[body]]
cells = ["progress", "bar, spinner, eta", { text = "ready", style = { fg = "82" } }]

[[body]]
cells = ["select", { text = "fuzzy filter", column_span = 2 }]

[[footer]]
cells = [{ text = "3 widgets", column_span = 3, align = "right" }]
`

func newTableCmd() *cobra.Command {
	var (
		file   string
		border string
	)

	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Render a table from a TOML definition",
		GroupID: GroupWidgets,
		Args:    cobra.NoArgs,
		Long: `Render a table described in TOML.

Without --file a demo table is rendered. Use "-" to read the definition
from stdin.`,
		Example: `  inkwell table                     # Render the demo table
  inkwell table -f report.toml      # Render a definition file
  inkwell table -f - < report.toml  # Read the definition from stdin
  inkwell table --border double     # Override the border glyphs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := readDefinition(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			tbl, err := buildTable(data, border)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Debug("table", "rows", fmt.Sprint(tbl.RowCount()), "columns", fmt.Sprint(tbl.ColumnCount()))
			return output.FromContext(ctx).Render(tbl)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML table definition (- for stdin)")
	cmd.Flags().StringVar(&border, "border", "", "Border glyphs: normal, rounded, thick, double, ascii, or hidden")
	_ = cmd.RegisterFlagCompletionFunc("border", cobra.FixedCompletions(tabledef.BorderSetNames, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// readDefinition returns the demo definition, stdin, or the file content.
func readDefinition(in io.Reader, file string) ([]byte, error) {
	switch file {
	case "":
		return []byte(demoTable), nil
	case "-":
		return io.ReadAll(in)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read table definition: %w", err)
	}
	return data, nil
}

// buildTable parses a definition and applies the border override.
func buildTable(data []byte, border string) (*table.Table, error) {
	b, err := tabledef.Parse(data)
	if err != nil {
		return nil, err
	}
	if border != "" {
		set, err := tabledef.BorderSet(border)
		if err != nil {
			return nil, fmt.Errorf("--border: %w", err)
		}
		b.BorderSet(set)
	}
	return b.Build()
}
