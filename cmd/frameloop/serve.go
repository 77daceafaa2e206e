package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the layer stack over SSH",
	Long: `Start an SSH server. Each connection gets its own layer stack and
scheduler, sized to the client's terminal.

Host key handling:
  - If --host-key is provided (or server.host_key_path is set), uses that key file
  - Otherwise, auto-generates a key at ~/.frameloop/host_key

Examples:
  frameloop serve                           # Listen on the configured address
  frameloop serve --ssh :2222               # Listen on port 2222
  frameloop serve --host-key ./my_host_key  # Use a specific host key

Connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	logger, closeLog, err := newLogger(os.Stderr, "frameloop-ssh")
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	server, err := tui.NewSSHServer(cfg, logger, flagSeed)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Serving frameloop over SSH on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("%v", err)
	}
}
