package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/models"
	"taskdesk/internal/service"
	"taskdesk/internal/storage"
)

type taskRequest struct {
	JobDescription string `json:"jobDescription"`
	Priority       string `json:"priority"`
	NotifyVia      string `json:"notifyVia"`
	PartyID        *int64 `json:"partyId"`
}

// handleListTasks returns every task joined with its party.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.svc.ListTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleCreateTask assigns a new task to an existing party.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}
	if req.PartyID == nil {
		s.respondError(c, http.StatusBadRequest, storage.Invalid("partyId", "is required"))
		return
	}

	task, err := s.svc.CreateTask(c.Request.Context(), service.CreateTaskInput{
		JobDescription: req.JobDescription,
		Priority:       models.Priority(req.Priority),
		NotifyVia:      models.NotifyVia(req.NotifyVia),
		PartyID:        *req.PartyID,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, task)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := s.svc.DeleteTask(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("task not found"))
		return
	}
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"success": true})
}
