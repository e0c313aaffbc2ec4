package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkenv/internal/app"
	"forkenv/internal/types"
)

type inspectOptions struct {
	ReportPath string
	Format     string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a previously written fork report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Fork report path")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Output format (text|yaml)")
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	format, err := parseFormat(resolveString(cmd, opts.Format, "format", "format"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		ReportPath: resolveString(cmd, opts.ReportPath, "report", "report"),
	})
	if err != nil {
		return err
	}
	return printReport(out(cmd), format, result.Report)
}
