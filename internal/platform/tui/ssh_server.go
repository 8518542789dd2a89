package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/app"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.breakout/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// Smallest PTY that still fits the HUD, a few brick rows and the paddle.
const (
	minPTYWidth  = 40
	minPTYHeight = 14
)

// SSHServer serves the Breakout app over SSH. Every connection gets its
// own app model and its own gameplay sessions; history and highscores are
// shared through svc.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	svc    *app.Services
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, svc *app.Services, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "breakout-ssh",
		})
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, svc: svc, logger: logger}

	// Middlewares run last to first: track, then check the PTY, then play.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newApp),
			srv.requirePTY,
			srv.track,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKey returns the host key location, defaulting to
// ~/.breakout/host_key, and makes sure its directory exists. wish generates
// the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".breakout", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// checkPTY reports why a connection cannot play, or "" if it can.
func checkPTY(pty ssh.Pty, ok bool) string {
	switch {
	case !ok:
		return "Breakout needs an interactive terminal: connect with ssh -t."
	case pty.Window.Width < minPTYWidth || pty.Window.Height < minPTYHeight:
		return fmt.Sprintf("Terminal too small: %dx%d, need at least %dx%d.",
			pty.Window.Width, pty.Window.Height, minPTYWidth, minPTYHeight)
	}
	return ""
}

// requirePTY turns away connections that cannot show the field.
func (s *SSHServer) requirePTY(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, _, ok := sess.Pty()
		if reason := checkPTY(pty, ok); reason != "" {
			s.logger.Warn("connection refused", "user", sess.User(), "reason", reason)
			wish.Fatalln(sess, reason)
			return
		}
		next(sess)
	}
}

// newApp builds the menu app for one connection. The connection context
// ends any running game when the client drops.
func (s *SSHServer) newApp(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewAppModel(sess.Context(), s.svc, sess.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// track logs connections and keeps the count of live ones.
func (s *SSHServer) track(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		start := time.Now()
		s.logger.Info("player connected", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)

		next(sess)

		n = s.active.Add(-1)
		s.logger.Info("player left", "user", sess.User(), "played", time.Since(start).Round(time.Second), "active", n)
	}
}

// Active returns the number of open connections.
func (s *SSHServer) Active() int64 {
	return s.active.Load()
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("listening", "address", s.config.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case sig := <-sigc:
		s.logger.Info("shutting down", "signal", sig.String(), "active", s.Active())
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to 10s for open ones.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
