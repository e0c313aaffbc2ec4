package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkenv/internal/app"
	"forkenv/internal/types"
)

type checkOptions struct {
	environmentOptions
	Marker string
	Format string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Test a marker against every fork of an environment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	addEnvironmentFlags(cmd, &opts.environmentOptions)
	cmd.Flags().StringVar(&opts.Marker, "marker", "", "PEP 508 marker expression")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Output format (text|yaml)")
	_ = viper.BindPFlag("marker", cmd.Flags().Lookup("marker"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	format, err := parseFormat(resolveString(cmd, opts.Format, "format", "format"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		EnvironmentInput: opts.input(cmd),
		Marker:           resolveString(cmd, opts.Marker, "marker", "marker"),
	})
	if err != nil {
		return err
	}
	w := out(cmd)
	if format == types.OutputFormatYAML {
		return writeYAML(w, result.Checks)
	}
	marker := result.Marker
	if marker == "" {
		marker = "true"
	}
	fmt.Fprintf(w, "marker: %s\n", marker)
	rows := [][]string{{"FORK", "INCLUDED", "IN FORK"}}
	for _, check := range result.Checks {
		rows = append(rows, []string{check.Label, yesNo(check.Included), yesNo(check.InFork)})
	}
	return writeTable(w, rows)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
