// Package cliopts carries the persistent flags shared by every learnlog
// subcommand and turns them into a config and a logger.
package cliopts

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"learnlog/internal/config"
	"learnlog/internal/logger"
)

type Options struct {
	EnvPath    string
	ConfigPath string
	Debug      bool

	log *zap.Logger
}

func (o *Options) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.EnvPath, "env", ".env", "Path to a .env file with HF_API_KEY and friends")
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "Optional TOML config file")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "Enable debug logging")
}

func (o *Options) Logger() *zap.Logger {
	if o.log == nil {
		o.log = logger.NewLogger(o.Debug)
	}
	return o.log
}

// Load reads the configuration. LEARNLOG_DEBUG=true upgrades the logger the
// same way --debug does.
func (o *Options) Load() (config.Config, error) {
	cfg, err := config.Load(o.EnvPath, o.ConfigPath, o.Logger())
	if err != nil {
		return cfg, err
	}
	if cfg.Debug && !o.Debug {
		o.Debug = true
		o.log = logger.NewLogger(true)
	}
	return cfg, nil
}
