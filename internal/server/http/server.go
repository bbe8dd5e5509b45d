package internalhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"teamcal/internal/feed"
)

type Config struct {
	Host string
	Port int
}

// ItemSource provides the current merged display items.
type ItemSource interface {
	Items() []feed.Item
}

// Server exposes the merged calendar snapshot over local HTTP. It is
// read-only; all mutations go through the interaction controller.
type Server struct {
	srv  *http.Server
	addr string
}

func NewServer(config Config, source ItemSource) *Server {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(source.Items()); err != nil {
			log.Errorf("failed to encode items: %v", err)
		}
	})

	return &Server{
		addr: addr,
		srv:  &http.Server{Addr: addr, Handler: loggingMiddleware(mux)},
	}
}

func (s *Server) Start(_ context.Context) error {
	log.Printf("starting status server on %s", s.addr)
	err := s.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func getIP(req *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}

	if parsed := net.ParseIP(ip); parsed == nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}
	return ip, nil
}
