package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkenv/internal/app"
	"forkenv/internal/types"
)

type forksOptions struct {
	environmentOptions
	RequirementsPath string
	RequiresPython   string
	ReportPath       string
	Format           string
}

func newForksCommand() *cobra.Command {
	opts := forksOptions{}
	cmd := &cobra.Command{
		Use:   "forks",
		Short: "Split an environment into its initial forks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForks(cmd.Context(), cmd, opts)
		},
	}
	addEnvironmentFlags(cmd, &opts.environmentOptions)
	cmd.Flags().StringVar(&opts.RequirementsPath, "requirements", "", "Requirements file")
	cmd.Flags().StringVar(&opts.RequiresPython, "requires-python", "", "Project requires-python (overrides the requirements file)")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Write the fork report to this path")
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Output format (text|yaml)")

	_ = viper.BindPFlag("requirements", cmd.Flags().Lookup("requirements"))
	_ = viper.BindPFlag("requires_python", cmd.Flags().Lookup("requires-python"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runForks(ctx context.Context, cmd *cobra.Command, opts forksOptions) error {
	format, err := parseFormat(resolveString(cmd, opts.Format, "format", "format"))
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Forks(ctx, app.ForksRequest{
		EnvironmentInput: opts.input(cmd),
		RequirementsPath: resolveString(cmd, opts.RequirementsPath, "requirements", "requirements"),
		RequiresPython:   resolveString(cmd, opts.RequiresPython, "requires_python", "requires-python"),
		OutputPath:       resolveString(cmd, opts.ReportPath, "report", "report"),
	})
	if err != nil {
		return err
	}
	return printReport(out(cmd), format, result.Report)
}

func parseFormat(raw string) (types.OutputFormat, error) {
	switch format := types.OutputFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case "", types.OutputFormatText:
		return types.OutputFormatText, nil
	case types.OutputFormatYAML:
		return format, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format %q", raw))
	}
}
