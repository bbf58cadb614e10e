package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/catalog"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
)

// ResourceHandler serves the curated course catalog.
type ResourceHandler struct {
	catalog *catalog.Catalog
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(cat *catalog.Catalog) *ResourceHandler {
	return &ResourceHandler{catalog: cat}
}

// ListResources godoc
// GET /api/v1/public/resources?domain=&q=
// Lists course groups filtered by domain name and title/instructor search.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	groups := h.catalog.Resources(c.Query("domain"), c.Query("q"))

	response.Success(c, http.StatusOK, gin.H{
		"domains":   h.catalog.Domains(),
		"resources": groups,
	})
}
