package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/nckh/internal/server"
	"github.com/abhisek/nckh/internal/webquiz"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the browser quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := buildDeps(cmd)
		defer d.Close()

		gen := d.generator()
		web := webquiz.New(gen, d.attempts(), logger, webquiz.DefaultConfig())
		go web.Sweep(ctx)

		cfg := server.DefaultConfig()
		if port := os.Getenv("PORT"); port != "" {
			cfg.Addr = ":" + port
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		cfg.AllowOrigin, _ = cmd.Flags().GetString("allow-origin")

		if d.provider == nil {
			logger.Warn("no LLM provider configured; AI endpoints will return errors")
		}
		return server.New(gen, d.tools(), web, logger, cfg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :5000, or $PORT)")
	serveCmd.Flags().String("allow-origin", "", "Value of Access-Control-Allow-Origin for API responses")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
}

// newLogger builds the text logger on stderr used by the server.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", name)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
