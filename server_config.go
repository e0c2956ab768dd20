package fsrv

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

type serverConfig struct {
	addr       string
	root       string
	handler    http.Handler
	proxyProto bool
	announce   io.Writer
	logger     *slog.Logger
}

func newServerConfig(opts []ServerOption) (*serverConfig, error) {
	cfg := &serverConfig{
		addr:     ":8888",
		root:     ".",
		announce: os.Stdout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

type ServerOption func(*serverConfig) error

// ServerAddress sets the full listen address, e.g. "127.0.0.1:8080".
func ServerAddress(addr string) ServerOption {
	return func(cfg *serverConfig) error {
		if addr == "" {
			return fmt.Errorf("empty server address")
		}
		cfg.addr = addr
		return nil
	}
}

// ServerPort sets the port to listen on, across all interfaces.
func ServerPort(port int) ServerOption {
	return func(cfg *serverConfig) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port %d out of range", port)
		}
		cfg.addr = fmt.Sprintf(":%d", port)
		return nil
	}
}

// ServerRoot sets the directory to serve files from.
func ServerRoot(dir string) ServerOption {
	return func(cfg *serverConfig) error {
		if dir == "" {
			return fmt.Errorf("empty root directory")
		}
		cfg.root = dir
		return nil
	}
}

// ServerHandler replaces the default file serving handler.
func ServerHandler(h http.Handler) ServerOption {
	return func(cfg *serverConfig) error {
		cfg.handler = h
		return nil
	}
}

// ServerProxyProto accepts PROXY protocol headers on incoming connections.
func ServerProxyProto() ServerOption {
	return func(cfg *serverConfig) error {
		cfg.proxyProto = true
		return nil
	}
}

// ServerAnnounce sets where the startup serving line is written. Defaults
// to stdout.
func ServerAnnounce(w io.Writer) ServerOption {
	return func(cfg *serverConfig) error {
		cfg.announce = w
		return nil
	}
}

func ServerLogger(logger *slog.Logger) ServerOption {
	return func(cfg *serverConfig) error {
		cfg.logger = logger
		return nil
	}
}
