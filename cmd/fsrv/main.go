package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsrv-dev/fsrv"
	"github.com/fsrv-dev/fsrv/reliable"
	"github.com/fsrv-dev/fsrv/slogc"
	"github.com/fsrv-dev/fsrv/statusc"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	LogLevel  string       `toml:"log-level"`
	LogFormat string       `toml:"log-format"`
	Server    ServerConfig `toml:"server"`
}

type ServerConfig struct {
	Port       int    `toml:"port"`
	Addr       string `toml:"bind-addr"`
	Root       string `toml:"root"`
	ProxyProto bool   `toml:"proxy-proto"`
	StatusAddr string `toml:"status-addr"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsrv",
		Short: "fsrv is a static file server",
	}
	cmd.Flags().SortFlags = false

	cmd.AddCommand(checkCmd())

	filename := cmd.Flags().String("config", "", "config file to load")

	var flagsConfig Config
	cmd.Flags().StringVar(&flagsConfig.LogLevel, "log-level", "", "log level to use")
	cmd.Flags().StringVar(&flagsConfig.LogFormat, "log-format", "", "log formatter to use")

	cmd.Flags().IntVar(&flagsConfig.Server.Port, "port", 0, "port to listen on, across all interfaces")
	cmd.Flags().StringVar(&flagsConfig.Server.Addr, "bind-addr", "", "full listen address, overrides port")
	cmd.Flags().StringVar(&flagsConfig.Server.Root, "root", "", "directory to serve files from")
	cmd.Flags().BoolVar(&flagsConfig.Server.ProxyProto, "proxy-proto", false, "accept proxy protocol headers")
	cmd.Flags().StringVar(&flagsConfig.Server.StatusAddr, "status-addr", "", "status server address to listen")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(*filename)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.merge(flagsConfig)

		logger, err := slogc.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}

		return serverRun(cmd.Context(), cfg.Server, logger)
	}

	return cmd
}

func serverRun(ctx context.Context, cfg ServerConfig, logger *slog.Logger) error {
	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.StatusAddr == "" {
		return srv.Run(ctx)
	}

	g := reliable.NewGroup(ctx)
	g.Go(srv.Run)
	g.Go(func(ctx context.Context) error {
		return statusc.Run(ctx, cfg.StatusAddr, srv.Status)
	})
	return g.Wait()
}

func newServer(cfg ServerConfig, logger *slog.Logger) (*fsrv.Server, error) {
	var opts []fsrv.ServerOption

	switch {
	case cfg.Addr != "":
		opts = append(opts, fsrv.ServerAddress(cfg.Addr))
	case cfg.Port != 0:
		opts = append(opts, fsrv.ServerPort(cfg.Port))
	}
	if cfg.Root != "" {
		opts = append(opts, fsrv.ServerRoot(cfg.Root))
	}
	if cfg.ProxyProto {
		opts = append(opts, fsrv.ServerProxyProto())
	}
	opts = append(opts, fsrv.ServerLogger(logger))

	srv, err := fsrv.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}
	return srv, nil
}

func loadConfig(file string) (Config, error) {
	var cfg Config
	if file == "" {
		return cfg, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec = dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	c.LogLevel = override(c.LogLevel, o.LogLevel)
	c.LogFormat = override(c.LogFormat, o.LogFormat)

	c.Server.merge(o.Server)
}

func (c *ServerConfig) merge(o ServerConfig) {
	if o.Port != 0 {
		c.Port = o.Port
	}
	c.Addr = override(c.Addr, o.Addr)
	c.Root = override(c.Root, o.Root)
	c.ProxyProto = c.ProxyProto || o.ProxyProto
	c.StatusAddr = override(c.StatusAddr, o.StatusAddr)
}

func override(s, o string) string {
	if o != "" {
		return o
	}
	return s
}
