package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"todo-backend/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect todo-backend configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [port] [base-url]",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(newConfigView(cfg))
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "# Effective configuration (defaults + file + env + flags)")
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	return cmd
}

// configView renders durations as "5s" rather than nanoseconds.
type configView struct {
	Port              int    `yaml:"port"`
	BaseURL           string `yaml:"base_url"`
	IDScheme          string `yaml:"id_scheme"`
	LogLevel          string `yaml:"log_level"`
	LogFormat         string `yaml:"log_format"`
	Debug             bool   `yaml:"debug"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	RequestTimeout    string `yaml:"request_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64  `yaml:"max_body_bytes"`
}

func newConfigView(cfg config.Config) configView {
	return configView{
		Port:              cfg.Port,
		BaseURL:           cfg.BaseURL,
		IDScheme:          cfg.IDScheme,
		LogLevel:          cfg.LogLevel,
		LogFormat:         cfg.LogFormat,
		Debug:             cfg.Debug,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.String(),
		RequestTimeout:    cfg.RequestTimeout.String(),
		ShutdownTimeout:   cfg.ShutdownTimeout.String(),
		MaxBodyBytes:      cfg.MaxBodyBytes,
	}
}
