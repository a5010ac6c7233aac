package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/internal/application/analyzer"
	"github.com/turtacn/InfringeScope/internal/application/catalog"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// InfringementHandler serves /api/v1/infringement.
type InfringementHandler struct {
	analyzer analyzer.Service
	catalog  catalog.Service
}

func NewInfringementHandler(a analyzer.Service, svc catalog.Service) *InfringementHandler {
	return &InfringementHandler{analyzer: a, catalog: svc}
}

// Check handles POST /api/v1/infringement/check.  A degraded analysis is
// still a 200; only bad input and unknown references are client errors.
func (h *InfringementHandler) Check(c *gin.Context) {
	var in analyzer.CheckInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusBadRequest, errors.ErrCodeBadRequest, "invalid request body")
		return
	}

	a, err := h.analyzer.Check(c.Request.Context(), &in)
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, a)
}

// List handles GET /api/v1/infringement, newest first.
func (h *InfringementHandler) List(c *gin.Context) {
	res, err := h.catalog.ListAnalyses(c.Request.Context(), parsePagination(c))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Get handles GET /api/v1/infringement/:id.
func (h *InfringementHandler) Get(c *gin.Context) {
	a, err := h.catalog.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, a)
}

//Personal.AI order the ending
