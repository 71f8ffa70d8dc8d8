package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	router      *mux.Router
	logger      *zap.Logger
	users       UserService
	progress    ProgressService
	tasks       TaskService
	leaderboard LeaderboardService
	publisher   AwardPublisher
	hub         *Hub
}

func NewServer(
	logger *zap.Logger,
	users UserService,
	progress ProgressService,
	tasks TaskService,
	leaderboard LeaderboardService,
	publisher AwardPublisher,
	hub *Hub,
) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		logger:      logger,
		users:       users,
		progress:    progress,
		tasks:       tasks,
		leaderboard: leaderboard,
		publisher:   publisher,
		hub:         hub,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/progress", s.handleGetProgress).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/xp", s.handleAwardXP).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/activity", s.handleGetActivity).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/tasks/{taskID:[0-9]+}/complete", s.handleCompleteTask).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}/tasks/{taskID:[0-9]+}/uncomplete", s.handleUncompleteTask).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", s.handleGetLeaderboard).Methods(http.MethodGet)

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.hub.ServeWS)
	}
}
