package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"todo-backend/internal/config"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo-backend [port] [base-url]",
		Short: "Todo-Backend HTTP API with an in-memory todo list",
		Long: `Serves the Todo-Backend API: GET/POST/DELETE on the root and
GET/PATCH/DELETE on each todo's url. The optional positional arguments
override --port and --base-url.`,
		Version:      Version,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "path to a TOML or YAML config file")
	pf.IntP("port", "p", config.Default().Port, "port to listen on")
	pf.String("base-url", "", "externally reachable base url (default http://localhost:<port>)")
	pf.String("id-scheme", config.Default().IDScheme, "todo id scheme: uuid or sequence")
	pf.String("log-level", config.Default().LogLevel, "debug, info, warn or error")
	pf.String("log-format", config.Default().LogFormat, "text, json or logfmt")
	pf.Bool("debug", false, "log every request and response in full")

	cmd.AddCommand(configCmd())

	return cmd
}

// loadConfig applies the positional [port] [base-url] arguments as flags,
// then layers file, env and flags.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	flags := cmd.Flags()

	positional := []string{"port", "base-url"}
	for i, arg := range args {
		if err := flags.Set(positional[i], arg); err != nil {
			return config.Config{}, fmt.Errorf("invalid %s %q: %w", positional[i], arg, err)
		}
	}

	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path, flags)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
