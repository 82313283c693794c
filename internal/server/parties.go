package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdesk/internal/models"
	"taskdesk/internal/storage"
)

type partyRequest struct {
	FirstName  string  `json:"firstName"`
	SecondName string  `json:"secondName"`
	Mobile1    string  `json:"mobile1"`
	Mobile2    *string `json:"mobile2"`
	Email      string  `json:"email"`
	Address    string  `json:"address"`
	Status     string  `json:"status"`
	Type       string  `json:"type"`
}

// handleListParties returns all parties ordered by first name.
func (s *Server) handleListParties(c *gin.Context) {
	parties, err := s.svc.ListParties(c.Request.Context())
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, parties)
}

// handleFirstParty returns the party with the lowest id.
func (s *Server) handleFirstParty(c *gin.Context) {
	party, err := s.svc.FirstParty(c.Request.Context())
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("no parties found"))
		return
	}
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, party)
}

// handleCreateParty adds a single party.
func (s *Server) handleCreateParty(c *gin.Context) {
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	party, err := s.svc.CreateParty(c.Request.Context(), models.Party{
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		Mobile1:    req.Mobile1,
		Mobile2:    req.Mobile2,
		Email:      req.Email,
		Address:    req.Address,
		Status:     models.PartyStatus(req.Status),
		Type:       req.Type,
	})
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusCreated, party)
}

// handleDeleteParty removes a party that has no tasks assigned.
func (s *Server) handleDeleteParty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := s.svc.DeleteParty(c.Request.Context(), id)
	if errors.Is(err, storage.ErrReference) {
		s.respondError(c, http.StatusConflict, fmt.Errorf("party has tasks assigned"))
		return
	}
	if err != nil {
		s.respondError(c, statusFor(err), err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"success": true})
}
