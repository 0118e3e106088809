package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	v1 "github.com/kimhaegyeong/reading-tracker/api/v1"
	"github.com/kimhaegyeong/reading-tracker/config"
	"github.com/kimhaegyeong/reading-tracker/http/response"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/store"
	"github.com/kimhaegyeong/reading-tracker/version"
)

type Server struct {
	Addr       string
	httpServer *http.Server
	store      *store.Store
}

func NewServer(ctx context.Context, store *store.Store) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			response.ServerError(w, r, err)
			return
		}
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, r, map[string]string{
			"version": version.GetCurrentVersion(),
			"schema":  version.GetSchemaVersion(version.GetCurrentVersion()),
		})
	}).Methods(http.MethodGet)

	handler := v1.NewHandler(store)
	v1.Server(router, handler)

	addr := net.JoinHostPort(config.Opts.Host, strconv.Itoa(config.Opts.Port))
	return &Server{
		Addr:  addr,
		store: store,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	log.Info("Server listening", zap.String("addr", s.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown server gracefully", zap.Error(err))
	}
	if err := s.store.Close(); err != nil {
		log.Error("Failed to close store", zap.Error(err))
	}
	log.Info("Server stopped")
}
