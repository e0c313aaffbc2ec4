package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forkenv/internal/app"
)

// environmentOptions are the flags shared by commands that build a
// resolver environment.
type environmentOptions struct {
	EnvironmentPath string
	SeedsPath       string
	Seeds           []string
}

func addEnvironmentFlags(cmd *cobra.Command, opts *environmentOptions) {
	cmd.Flags().StringVar(&opts.EnvironmentPath, "environment", "", "Marker environment file (pins a specific environment)")
	cmd.Flags().StringVar(&opts.SeedsPath, "seeds", "", "Fork seeds file for a universal environment")
	cmd.Flags().StringArrayVar(&opts.Seeds, "seed", nil, "Fork seed marker (repeatable)")
	_ = viper.BindPFlag("environment", cmd.Flags().Lookup("environment"))
	_ = viper.BindPFlag("seeds", cmd.Flags().Lookup("seeds"))
	_ = viper.BindPFlag("seed", cmd.Flags().Lookup("seed"))
}

func (o environmentOptions) input(cmd *cobra.Command) app.EnvironmentInput {
	return app.EnvironmentInput{
		EnvironmentPath: resolveString(cmd, o.EnvironmentPath, "environment", "environment"),
		SeedsPath:       resolveString(cmd, o.SeedsPath, "seeds", "seeds"),
		Seeds:           resolveStrings(cmd, o.Seeds, "seed", "seed"),
	}
}
