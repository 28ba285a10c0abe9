package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numhunt/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the numhunt SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the scene picker menu.
Results are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.numhunt/host_key

Examples:
  numhunt serve                           # Listen on :23234 with auto-generated key
  numhunt serve --ssh :2222               # Listen on port 2222
  numhunt serve --host-key ./my_host_key  # Use specific host key
  numhunt serve --db ./numhunt.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default $NUMHUNT_SSH_ADDR or :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{OpenStore: true})
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = env.SSHAddr
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Language = a.language
	cfg.Pace = a.pace
	cfg.Factory = a.newGame
	cfg.Store = a.store
	cfg.Logger = a.logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting numhunt SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
