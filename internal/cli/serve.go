package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/playback"
	"github.com/SeamusWaldron/cubestate/internal/transport/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve [state] [moves]",
	Short: "Stream a solution to an external renderer",
	Long: `Serve a solution over WebSocket so a 3D renderer can follow it.

Clients connect to /ws and receive a JSON snapshot after every move. They
may send commands such as {"action":"next"}, {"action":"play"} or
{"action":"jump","step":5}. /state returns the current snapshot and
/metrics exposes Prometheus metrics.

Usage:
  cubestate serve --id <cube-id>
  cubestate serve <state> "U R U' R'" --addr :8765`,
	Args: cobra.MaximumNArgs(2),
	RunE: runServe,
}

var (
	serveID   string
	serveAddr string
	servePlay bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveID, "id", "", "Serve a saved cube")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&servePlay, "play", false, "Start auto-play immediately")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, title, err := loadSession(ctx, serveID, args)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	player := playback.NewPlayer(session,
		playback.WithSpeed(cfg.PlaybackSpeed()),
		playback.WithLogger(logger),
	)
	defer player.Close()

	hub := ws.NewHub(ctx, player, ws.WithLogger(logger), ws.WithRegisterer(reg))
	player.OnStep(hub.Broadcast)
	player.OnDone(func() {
		logger.Info("playback finished", "moves", session.Len())
	})

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving %q (%d moves) on http://%s\n", title, session.Len(), addr)
	fmt.Fprintln(out, "Renderers connect to /ws. Press Ctrl+C to stop.")

	if servePlay || cfg.Playback.AutoPlay {
		if err := player.Play(ctx); err != nil {
			logger.Warn("auto-play not started", "error", err)
		}
	}

	return ws.Serve(ctx, addr, hub, reg)
}
