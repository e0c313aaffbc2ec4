package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"forkenv/internal/types"
)

func out(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

func printReport(w io.Writer, format types.OutputFormat, report types.ForkReport) error {
	if format == types.OutputFormatYAML {
		return writeYAML(w, report)
	}
	fmt.Fprintf(w, "environment: %s\n", report.Environment)
	rows := [][]string{{"FORK", "REQUIRES-PYTHON", "REQUIREMENTS"}}
	for _, fork := range report.Forks {
		python := fork.RequiresPython
		if python == "" {
			python = "*"
		}
		rows = append(rows, []string{fork.Label, python, fmt.Sprintf("%d", len(fork.Requirements))})
	}
	if err := writeTable(w, rows); err != nil {
		return err
	}
	for _, fork := range report.Forks {
		if len(fork.Requirements) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", fork.Label)
		for _, req := range fork.Requirements {
			fmt.Fprintf(w, "- %s\n", req)
		}
	}
	return nil
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

// writeTable pads every column to its widest cell, measured in
// terminal cells so wide runes line up.
func writeTable(w io.Writer, rows [][]string) error {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}
