package cmd

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/govalues/moneytax/internal/config"
	"github.com/govalues/moneytax/internal/service"
)

// defaultConfig is used when neither --config nor TAXCALC_CONFIG is set.
const defaultConfig = "./configs/taxcalc.toml"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "taxcalc",
	Short: "Currency conversion and progressive tax calculator",
	Long: `taxcalc converts and compares amounts across currencies and computes
progressive income tax with deductions.

Exchange rates and tax schedules are read from a TOML or YAML file.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $TAXCALC_CONFIG or "+defaultConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := os.Getenv("TAXCALC_CONFIG"); p != "" {
		return p
	}
	return defaultConfig
}

func loadConfig() (*config.Config, error) {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// newService builds the service from the configuration. Service calls are
// logged at debug level.
func newService(cfg *config.Config, logger log.Logger) (service.Service, error) {
	x, schedules, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	svc := service.NewService(x, schedules)
	return service.NewLoggingService(level.Debug(log.With(logger, "component", "service")), svc), nil
}

// app holds what every sub-command needs.
type app struct {
	cfg    *config.Config
	svc    service.Service
	logger log.Logger
}

func setup() (*app, error) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "config", "err", err)
		return nil, err
	}
	svc, err := newService(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "config", "path", configPath(), "err", err)
		return nil, err
	}
	return &app{cfg: cfg, svc: svc, logger: logger}, nil
}
