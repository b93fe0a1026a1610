package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/veilbreakers/gambit-core/bridge"
	"github.com/veilbreakers/gambit-core/gambit"
)

var serveFlags struct {
	socketPath string
	watch      bool
	ultWindow  time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the decision bridge the game client connects to",
	Long: `Listens on a unix domain socket for the VeilBreakers client. The client
opens a session with a hello naming its party members; after that every
battle_state message gets a decision (or pass) back, and override commands
steer pending ultimates and tactical overlays.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.socketPath, "socket", "/tmp/gambit.sock", "Unix socket path")
	f.BoolVar(&serveFlags.watch, "watch", false, "Reload archetype files on change (requires --defs)")
	f.DurationVar(&serveFlags.ultWindow, "ultimate-window", 5*time.Second, "How long a charged ultimate waits for a manual target")
}

func runServe(cmd *cobra.Command, _ []string) error {
	fmt.Println(banner)

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	slog.Info("starting gambit bridge", "archetypes", reg.Archetypes())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveFlags.watch {
		if rootFlags.defsDir == "" {
			return fmt.Errorf("--watch requires --defs")
		}
		reloader, err := gambit.NewReloader(reg, rootFlags.defsDir)
		if err != nil {
			return err
		}
		go reloader.Run(ctx)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(serveFlags.socketPath); err != nil {
		return fmt.Errorf("clean up socket: %w", err)
	}

	listener, err := net.Listen("unix", serveFlags.socketPath)
	if err != nil {
		return fmt.Errorf("listen on socket: %w", err)
	}
	defer listener.Close()
	defer os.Remove(serveFlags.socketPath)

	slog.Info("listening on domain socket", "path", serveFlags.socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, reg)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

func handleConn(conn net.Conn, reg *gambit.Registry) {
	c := bridge.NewConnection(conn, nil)
	s := bridge.NewSession(c, reg, serveFlags.ultWindow)
	s.Run()
}
