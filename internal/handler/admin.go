package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository/postgres"
)

// AdminHandler exposes the read-only schema-registry browse surface.
// Only whitelisted tables with fixed column lists are reachable; caller
// input never becomes part of a SQL statement.
type AdminHandler struct {
	browseRepo *postgres.BrowseRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(browseRepo *postgres.BrowseRepository) *AdminHandler {
	return &AdminHandler{browseRepo: browseRepo}
}

// ListTables handles GET /v1/admin/tables
func (h *AdminHandler) ListTables(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"tables": h.browseRepo.Tables()})
}

// BrowseTable handles GET /v1/admin/tables/:name
func (h *AdminHandler) BrowseTable(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	columns, rows, err := h.browseRepo.Browse(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
		"rows":    rows,
	})
}

func (h *AdminHandler) authorize(c *gin.Context) bool {
	actor, ok := actorFrom(c)
	if !ok {
		return false
	}
	if actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "admin role required"})
		return false
	}
	return true
}
