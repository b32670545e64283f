package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/objscope/objscope/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config string // TOML config file path
	addr   string // listen address override
}

// newServeCmd creates the serve command for the HTTP fragment server.
// Without an input file it serves a built-in demo value covering every
// node variant.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a value as an expandable HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runServe(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (overrides config)")

	return cmd
}

// runServe loads the configuration and value, then serves until cancelled.
func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg := server.DefaultConfig()
	if opts.config != "" {
		loaded, err := server.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debugf("Loaded config from %s", opts.config)
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	v := demoValue()
	if input != "" {
		loaded, err := loadValue(input)
		if err != nil {
			return err
		}
		v = loaded
		logger.Infof("Serving %s", input)
	} else {
		logger.Info("Serving built-in demo value")
	}

	srv := server.New(cfg, logger)
	if err := srv.SetRoot(v); err != nil {
		return err
	}

	printInfo("Serving on http://localhost%s", cfg.Addr)
	printDetail("press ctrl+c to stop")

	err := srv.ListenAndServe(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
