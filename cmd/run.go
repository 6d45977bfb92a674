package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"taskflow/editor"
	"taskflow/frame"
	"taskflow/logging"
	"taskflow/terminal"
)

func runCmd() *cobra.Command {
	var (
		fps         int
		metricsAddr string
		logFile     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Edit the task graph interactively in the terminal",
		Long: "Opens the task board in the terminal.\n\n" +
			"  click a task, then another    connect them\n" +
			"  drag a task onto another      connect them\n" +
			"  drag a task or empty space    move it / pan\n" +
			"  wheel, + and -                zoom\n" +
			"  a / d                         add task / delete selected\n" +
			"  arrows                        pan\n" +
			"  q, Esc, Ctrl-C                quit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if fps > 0 {
				cfg.Terminal.FPS = fps
			}
			if logFile != "" {
				cfg.LogFile = logFile
			}

			// The screen owns stdout and stderr, so logs only go to a file.
			log, closeLog, err := openLog(cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := serveMetrics(metricsAddr, log)
				defer shutdownMetrics(srv, log)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialise screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.Clear()

			loop := frame.NewLoop()
			ed := editor.New(cfg.SeedGraph(), loop, cfg.EditorOptions(log))
			defer ed.Close()

			host := terminal.New(screen, ed, loop, terminal.Options{
				FPS:        cfg.Terminal.FPS,
				CellWidth:  cfg.Terminal.CellWidth,
				CellHeight: cfg.Terminal.CellHeight,
				PanStep:    cfg.Terminal.PanStep,
				ZoomStep:   cfg.Viewport.ZoomStep,
				Logger:     log,
			})
			return host.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (overrides config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")
	return cmd
}

func serveMetrics(addr string, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics server listening", logging.F("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", err)
		}
	}()
	return srv
}

func shutdownMetrics(srv *http.Server, log logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("metrics server shutdown", err)
	}
}
