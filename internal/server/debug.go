package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"grimdelve/internal/engine"
	"grimdelve/internal/version"
	"grimdelve/pkg/logger"

	"github.com/gorilla/websocket"
)

// DebugServer предоставляет доступ к внутреннему состоянию симуляции
// только на чтение: наблюдение не сетевая игра, ввод по сети не
// принимается.
type DebugServer struct {
	Game *engine.Game
	Port int
}

func New(game *engine.Game, port int) *DebugServer {
	return &DebugServer{Game: game, Port: port}
}

var upgrader = websocket.Upgrader{
	// Наблюдатель локальный, происхождение не проверяем
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Run запускает отладочный HTTP сервер. Блокирует.
func (s *DebugServer) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/version", s.handleVersion)
	mux.HandleFunc("/debug/queue", s.handleQueue)
	mux.HandleFunc("/debug/watch", s.handleWatch)

	logger.Log.Infof("Debug server running on :%d", s.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), mux)
}

func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *DebugServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Get())
}

// /debug/queue - снимок расписания ходов
func (s *DebugServer) handleQueue(w http.ResponseWriter, r *http.Request) {
	// Снимок берется под замком сессии: хендлер живет на горутине
	// HTTP-сервера, а симуляция в этот момент может мутировать акторов.
	writeJSON(w, s.Game.QueueSnapshot())
}

// /debug/watch - websocket-стрим журнала сообщений. Сервер только
// пишет; любое входящее сообщение закрывает соединение.
func (s *DebugServer) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.System("debug").WithError(err).Warn("Watch upgrade failed")
		return
	}
	defer conn.Close()

	feed := s.Game.Watch()

	logger.System("debug").WithField("remote", r.RemoteAddr).Info("Watcher attached")

	for entry := range feed {
		if err := conn.WriteJSON(entry); err != nil {
			logger.System("debug").WithError(err).Debug("Watcher detached")
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
