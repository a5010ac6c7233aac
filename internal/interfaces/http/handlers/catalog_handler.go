package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/internal/application/catalog"
)

// CompanyHandler serves /api/v1/companies.
type CompanyHandler struct {
	catalog catalog.Service
}

func NewCompanyHandler(svc catalog.Service) *CompanyHandler {
	return &CompanyHandler{catalog: svc}
}

// List handles GET /api/v1/companies.
func (h *CompanyHandler) List(c *gin.Context) {
	res, err := h.catalog.ListCompanies(c.Request.Context(), parsePagination(c))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Get handles GET /api/v1/companies/:id; id is a UUID or a company name.
func (h *CompanyHandler) Get(c *gin.Context) {
	co, err := h.catalog.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, co)
}

// PatentHandler serves /api/v1/patents.
type PatentHandler struct {
	catalog catalog.Service
}

func NewPatentHandler(svc catalog.Service) *PatentHandler {
	return &PatentHandler{catalog: svc}
}

// List handles GET /api/v1/patents.
func (h *PatentHandler) List(c *gin.Context) {
	res, err := h.catalog.ListPatents(c.Request.Context(), parsePagination(c))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Get handles GET /api/v1/patents/:id; id is a UUID or a publication number.
func (h *PatentHandler) Get(c *gin.Context) {
	p, err := h.catalog.GetPatent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// UserHandler serves /api/v1/users and /api/v1/items.  Password hashes never
// leave the domain type.
type UserHandler struct {
	catalog catalog.Service
}

func NewUserHandler(svc catalog.Service) *UserHandler {
	return &UserHandler{catalog: svc}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	res, err := h.catalog.ListUsers(c.Request.Context(), parsePagination(c))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.catalog.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, u)
}

func (h *UserHandler) ListItems(c *gin.Context) {
	res, err := h.catalog.ListItems(c.Request.Context(), parsePagination(c))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

func (h *UserHandler) GetItem(c *gin.Context) {
	it, err := h.catalog.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

//Personal.AI order the ending
