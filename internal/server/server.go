package server

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"kibitzer/internal/controller"
	"kibitzer/internal/game"
	"kibitzer/internal/storage"
)

const defaultHistoryLimit = 20

// Server is the HTTP server.
type Server struct {
	mux      *http.ServeMux
	registry *game.Registry
	ctrl     *controller.Controller
	store    *storage.Store
	hub      *hub
	log      *zap.Logger
	webFS    fs.FS
}

// New creates a server with all routes.
// webFS should be the "web" subdirectory of the embedded filesystem.
func New(registry *game.Registry, ctrl *controller.Controller, store *storage.Store, webFS fs.FS, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		mux:      http.NewServeMux(),
		registry: registry,
		ctrl:     ctrl,
		store:    store,
		hub:      newHub(log),
		log:      log,
		webFS:    webFS,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// API routes
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	s.mux.HandleFunc("GET /api/rooms/{room}/history", s.handleRoomHistory)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)

	// Static files
	s.mux.Handle("/", http.FileServer(http.FS(s.webFS)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Rooms())
}

func (s *Server) handleRoomHistory(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("room"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid room"})
		return
	}
	if number < 1 || number > len(s.ctrl.Rooms()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	limit := defaultHistoryLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if limit, err = strconv.Atoi(q); err != nil || limit < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
	}

	rounds := []storage.RoundRow{}
	if s.store != nil {
		rows, err := s.store.ListRounds(number-1, limit)
		if err != nil {
			s.log.Error("list rounds", zap.Int("room", number), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
			return
		}
		rounds = append(rounds, rows...)
	}
	writeJSON(w, http.StatusOK, rounds)
}

// recordRound appends a finished round to the history. Failures are logged
// and never reach players.
func (s *Server) recordRound(round *controller.RoundResult) {
	if s.store == nil || round == nil {
		return
	}
	scores := make([]storage.ScoreRow, len(round.Scores))
	for i, sc := range round.Scores {
		scores[i] = storage.ScoreRow{Nic: sc.Nic, Points: sc.Points}
	}
	id, err := s.store.RecordRound(round.Room, round.Game, round.Winner, scores)
	if err != nil {
		s.log.Error("record round", zap.Int("room", round.Room+1), zap.Error(err))
		return
	}
	s.log.Info("round recorded", zap.String("round", id), zap.Int("room", round.Room+1))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
