package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetVisits(c *gin.Context) {
	count, err := s.svc.VisitCount(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"count": count})
}

func (s *Server) handleIncrementVisits(c *gin.Context) {
	count, err := s.svc.IncrementVisits(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"count": count})
}
