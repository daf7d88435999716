// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/lineutils/lineutils/internal/textutil"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newListCommand creates the `lineutils list` command.
func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available utilities and their flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Stdout, renderUtilityTable(app.Registry))
			return nil
		},
	}
}

// renderUtilityTable renders one row per utility: name, summary and flags.
func renderUtilityTable(reg *textutil.Registry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableCellStyle.Foreground(ColorHighlight)
			default:
				return tableCellStyle
			}
		}).
		Headers("UTILITY", "DESCRIPTION", "FLAGS")

	for _, name := range reg.Names() {
		cmd, _ := reg.Lookup(name)
		t.Row(name, utilitySummary(name), formatFlags(cmd.SupportedFlags()))
	}
	return t.Render()
}

// formatFlags renders flags as "-n/--lines LINES, -q/--quiet".
func formatFlags(flags []textutil.FlagInfo) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		var b strings.Builder
		if f.ShortName != "" {
			b.WriteString("-" + f.ShortName + "/")
		}
		b.WriteString("--" + f.Name)
		if f.TakesValue {
			b.WriteString(" " + strings.ToUpper(f.Name))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
