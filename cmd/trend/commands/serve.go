package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/panyam/trendchart/feeds"
	"github.com/panyam/trendchart/logging"
	"github.com/panyam/trendchart/trend"
	"github.com/panyam/trendchart/web"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [file.json]...",
		Short: "Serve an interactive chart viewer",
		Long: `Imports the given recorded feeds, if any, and serves a viewer with pan and
zoom. With --input a live NDJSON feed ("-" for stdin) is ingested while
serving; pan and zoom then start disabled and can be toggled in the page.

Example:
  trend serve --addr :9090 history.json
  sensor-dump | trend serve --input -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagAddr, _ := cmd.Flags().GetString("addr")
			addr := serveAddress(flagAddr)
			input, _ := cmd.Flags().GetString("input")
			window, _ := cmd.Flags().GetInt("window")

			engine, surface, err := newEngine()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				report, err := importFiles(cmd.Context(), engine, args, window)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
			}
			engine.SetMoveEnabled(input == "")

			srv := web.NewServer(engine, surface, plotConfig())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := &http.Server{Addr: addr, Handler: srv.Handler()}
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logging.Error("server failed: %v", err)
					stop()
				}
			}()
			if input != "" {
				go streamInto(ctx, srv, cmd.InOrStdin(), input)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s http://%s\n", color.GreenString("viewer:"), displayAddr(addr))

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "server stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: "+EnvWebAddress+" or :8080)")
	cmd.Flags().StringP("input", "i", "", "Live NDJSON feed to ingest while serving (\"-\" for stdin)")
	cmd.Flags().IntP("window", "w", 0, "Approximate samples kept per imported channel (default: capacity)")
	return cmd
}

// streamInto feeds a live input to the server's engine until it ends.
func streamInto(ctx context.Context, srv *web.Server, stdin io.Reader, input string) {
	r := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			logging.Error("opening live feed: %v", err)
			return
		}
		defer f.Close()
		r = f
	}
	err := feeds.NewLiveDecoder(r).Stream(ctx, func(s feeds.LiveSample) error {
		return srv.Do(func(e *trend.Engine) error {
			return ingest(e, s, false)
		})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("live feed stopped: %v", err)
		return
	}
	logging.Info("live feed ended")
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	AddCommand(serveCmd())
}
