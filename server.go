// Package fsrv implements a static file server over HTTP. A Server binds a
// TCP listener on a configured address and serves files and directory
// listings from a root directory until its run context is canceled.
package fsrv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"sync/atomic"

	"github.com/fsrv-dev/fsrv/fileserver"
	"github.com/fsrv-dev/fsrv/netc"
	"github.com/fsrv-dev/fsrv/statusc"
	"github.com/pires/go-proxyproto"
)

type Server struct {
	serverConfig

	rootDir  string
	requests atomic.Int64

	boundAddr *net.TCPAddr
	ready     chan struct{}
}

func NewServer(opts ...ServerOption) (*Server, error) {
	cfg, err := newServerConfig(opts)
	if err != nil {
		return nil, err
	}

	rootDir := cfg.root
	if cfg.handler == nil {
		fh, err := fileserver.New(cfg.root, cfg.logger)
		if err != nil {
			return nil, fmt.Errorf("create file handler: %w", err)
		}
		cfg.handler = fh
		rootDir = fh.Root()
	}

	return &Server{
		serverConfig: *cfg,

		rootDir: rootDir,
		ready:   make(chan struct{}),
	}, nil
}

// Run binds the listening socket and serves until ctx is canceled. The
// listener is closed on every return path. Run can be called at most once.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Debug("resolving tcp address", "addr", s.addr)
	addr, err := net.ResolveTCPAddr("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("resolve address %q: %w", s.addr, err)
	}

	tcpListener, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %q: %w", s.addr, err)
	}
	defer tcpListener.Close()

	var listener net.Listener = tcpListener
	if s.proxyProto {
		listener = &proxyproto.Listener{Listener: tcpListener}
	}

	boundAddr := tcpListener.Addr().(*net.TCPAddr)
	s.boundAddr = boundAddr
	close(s.ready)

	s.announceServing(boundAddr)
	s.logger.Info("server started", "addr", boundAddr, "root", s.rootDir)

	srv := &http.Server{
		Handler: s.trackRequests(s.handler),
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	s.logger.Info("server stopped", "addr", boundAddr)
	return nil
}

func (s *Server) announceServing(addr *net.TCPAddr) {
	fmt.Fprintf(s.announce, "Serving at http://localhost:%d\n", addr.Port)

	if !addr.IP.IsUnspecified() {
		return
	}
	localAddrs, err := netc.LocalAddrs()
	if err != nil {
		s.logger.Debug("cannot list local addresses", "err", err)
		return
	}
	for _, localAddr := range localAddrs {
		url := fmt.Sprintf("http://%s/", netip.AddrPortFrom(localAddr, uint16(addr.Port)))
		s.logger.Debug("server reachable", "url", url)
	}
}

type ServerStatus struct {
	Status   statusc.Status `json:"status"`
	Addr     string         `json:"addr,omitempty"`
	Root     string         `json:"root"`
	Requests int64          `json:"requests"`
}

// Status reports the current state of the server, in a form servable by
// [statusc.Run].
func (s *Server) Status(_ context.Context) (ServerStatus, error) {
	select {
	case <-s.ready:
		return ServerStatus{
			Status:   statusc.Serving,
			Addr:     s.boundAddr.String(),
			Root:     s.rootDir,
			Requests: s.requests.Load(),
		}, nil
	default:
		return ServerStatus{
			Status: statusc.Starting,
			Root:   s.rootDir,
		}, nil
	}
}

func (s *Server) trackRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)

		rw := newRequestWriter(w, r)
		next.ServeHTTP(rw, r)
		rw.logDone(s.logger)
	})
}
