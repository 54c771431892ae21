package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/platform/tui"
)

var (
	flagServeConfig string
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu and its
own chess engine. Scores are shared by everyone on the server.

Settings come from --server-config (YAML), then ARCADE_* environment
variables, then defaults; flags given on the command line win:

  ARCADE_SSH_ADDR, ARCADE_HOST_KEY, ARCADE_STORE, ARCADE_DB_PATH,
  ARCADE_REDIS_URL, ARCADE_IDLE_TIMEOUT, ARCADE_LOG_LEVEL

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --store redis             # Share scores through Redis
  arcade serve --server-config arcade.yaml

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeConfig, "server-config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
	addGameFlags(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer(flagServeConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSHAddr = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("store") {
		cfg.Store = flagStore
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = flagRedisURL
	}
	if !flags.Changed("log-level") {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	if err := applyGameFlags(); err != nil {
		return err
	}

	store, err := openStore(cfg.Store, cfg.DBPath, cfg.RedisURL)
	if err != nil {
		logger.Warn("score storage disabled", "store", cfg.Store, "err", err)
		store = nil
	}
	defer closeStore(store)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:       cfg.SSHAddr,
		HostKeyPath:   cfg.HostKeyPath,
		IdleTimeout:   cfg.IdleTimeout,
		ChessDefaults: chessDefaults(),
	}, store, logger.WithPrefix("arcade-ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
