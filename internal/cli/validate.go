package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkenv/internal/app"
)

type validateOptions struct {
	SeedsPath string
	Seeds     []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate that fork seeds parse and are disjoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SeedsPath, "seeds", "", "Fork seeds file")
	cmd.Flags().StringArrayVar(&opts.Seeds, "seed", nil, "Fork seed marker (repeatable)")
	_ = viper.BindPFlag("seeds", cmd.Flags().Lookup("seeds"))
	_ = viper.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.ValidateSeeds(ctx, app.ValidateRequest{
		SeedsPath: resolveString(cmd, opts.SeedsPath, "seeds", "seeds"),
		Seeds:     resolveStrings(cmd, opts.Seeds, "seed", "seed"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out(cmd), "validated: %d fork seeds\n", result.SeedCount)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
