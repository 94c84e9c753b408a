package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Profiling
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/engine"
	"github.com/alexeagleson/goblin-boys/internal/engine/handlers"
	"github.com/alexeagleson/goblin-boys/internal/network"
	"github.com/alexeagleson/goblin-boys/internal/version"
	"github.com/alexeagleson/goblin-boys/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Game - то, что серверу нужно от игрового цикла
type Game interface {
	Submit(cmd domain.Command) bool
	Snapshot() *engine.WorldSnapshot
}

type Server struct {
	Game     Game
	Hub      *network.Broadcaster
	Commands *handlers.Registry
	Port     int
	// Metrics - обработчик /metrics, nil если метрики выключены
	Metrics http.Handler
}

func New(game Game, hub *network.Broadcaster, port int) *Server {
	return &Server{
		Game:     game,
		Hub:      hub,
		Commands: handlers.NewRegistry(),
		Port:     port,
	}
}

// Handler собирает все роуты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	if s.Metrics != nil {
		mux.Handle("/metrics", s.Metrics)
	}
	// pprof регистрируется в DefaultServeMux
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	debugHandler := NewDebugHandler(s.Game)
	debugHandler.RegisterRoutes(mux)

	return mux
}

// Run запускает HTTP сервер и гасит его при отмене контекста
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Goblin Boys server running on :%d", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Log.Info("HTTP server stopped")
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
// Игрок появляется в мире только после команды CONNECT.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	user := s.Hub.NextUserID()
	updates := s.Hub.Register(user)
	client := NewClient(s.Game, conn, s.Commands, user, updates)
	client.log().Info("Client connected")

	// Запускаем пампы
	go client.writePump()
	go client.readPump(func() { s.Hub.Unregister(user) })
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
