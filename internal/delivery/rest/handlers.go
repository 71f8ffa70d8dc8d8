package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aliskhannn/growth-tracker/internal/domain/entities"
	"github.com/aliskhannn/growth-tracker/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.users.EnsureUser(r.Context(), req.ID, req.DisplayName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.progress.GetProgress(r.Context(), req.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, toProgressView(view))
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.progress.GetProgress(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProgressView(view))
}

func (s *Server) handleAwardXP(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req awardRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	event, err := s.progress.AwardXP(r.Context(), userID, service.AwardRequest{
		Amount:         req.Amount,
		TaskCompletion: req.TaskCompletion,
		Reason:         req.Reason,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAward(event))
	s.publisher.PublishAward(r.Context(), *event)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	events, err := s.progress.History(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEvent(e))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req createTaskRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), userID, req.Title, req.XPReward)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTask(*task))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tasks, err := s.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTask(*t))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	s.toggleTask(w, r, s.tasks.CompleteTask)
}

func (s *Server) handleUncompleteTask(w http.ResponseWriter, r *http.Request) {
	s.toggleTask(w, r, s.tasks.UncompleteTask)
}

func (s *Server) toggleTask(
	w http.ResponseWriter,
	r *http.Request,
	toggle func(ctx context.Context, userID, taskID int64) (*service.TaskResult, error),
) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := toggle(r.Context(), userID, taskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var streak entities.Streak
	if res.Award != nil {
		streak = res.Award.Streak
	} else {
		view, err := s.progress.GetProgress(r.Context(), userID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		streak = view.Streak
	}

	s.writeJSON(w, http.StatusOK, taskToggleResponse{
		Task:     toTask(res.Task),
		Progress: toProgress(res.Progress, streak),
	})

	if res.Award != nil {
		s.publisher.PublishAward(r.Context(), *res.Award)
	}
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entries, err := s.leaderboard.Top(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, leaderboardEntryResponse(e))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed json: %v", service.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", service.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad %s", service.ErrInvalidInput, name)
	}
	return n, nil
}
