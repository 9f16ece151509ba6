package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arl/statsviz"
)

// Server 运行时监控，页面地址 /debug/statsviz/
type Server struct {
	srv *http.Server
}

func NewServer(addr string) (*Server, error) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return nil, err
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Serve 阻塞直到关闭
func (s *Server) Serve() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
