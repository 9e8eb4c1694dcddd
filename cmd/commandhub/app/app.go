package app

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/component-base/cli/globalflag"

	"github.com/autopeer-io/commandhub/cmd/commandhub/app/options"
	"github.com/autopeer-io/commandhub/internal/commandhub"
	"github.com/autopeer-io/commandhub/pkg/log"
	pkgoptions "github.com/autopeer-io/commandhub/pkg/options"
)

const commandDesc = `The commandhub server backs the admin dashboard command bar.
It lists and searches the action catalog, walks operators through
confirmation and form modals, runs the selected action against the
dashboard backend and publishes the resulting notifications.`

func NewCommandHubCommand(ctx context.Context) *cobra.Command {
	opts := options.NewServerOptions()
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          "commandhub",
		Short:        "Launch the command bar action server",
		Long:         commandDesc,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v, cmd, configFile, opts); err != nil {
				return err
			}
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			log.Init(opts.Log)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(ctx, v, configFile, opts)
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&configFile, "config", "c", "", "Path to a YAML or JSON configuration file. Flags override file values.")
	namedfs := opts.Flags()
	globalflag.AddGlobalFlags(namedfs.FlagSet("global"), cmd.Name())
	for _, f := range namedfs.FlagSets {
		fs.AddFlagSet(f)
	}

	cmd.AddCommand(newActionsCommand())
	return cmd
}

func run(ctx context.Context, v *viper.Viper, configFile string, opts *options.ServerOptions) error {
	cfg, err := opts.Config()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	hub, err := cfg.NewCommandHub()
	if err != nil {
		log.Error(err, "failed to create command hub")
		return err
	}

	if configFile != "" {
		watchRateLimit(v, hub)
	}

	if err := hub.Run(ctx); err != nil {
		log.Error(err, "command hub stopped with error")
		return err
	}
	return nil
}

// loadConfig layers flag defaults, the config file and explicitly set flags onto opts.
func loadConfig(v *viper.Viper, cmd *cobra.Command, configFile string, opts *options.ServerOptions) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

func watchRateLimit(v *viper.Viper, hub *commandhub.CommandHub) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		ro := pkgoptions.NewRateLimitOptions()
		if err := v.UnmarshalKey("ratelimit", ro); err != nil {
			log.Error(err, "failed to reload rate limit settings", "file", e.Name)
			return
		}
		hub.ApplyRateLimit(ro)
	})
	v.WatchConfig()
}
