package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/middleware"
)

// ReferenceHandler serves lookup collections and product search.
type ReferenceHandler struct {
	facade ReferenceFacade
}

// NewReferenceHandler constructs ReferenceHandler.
func NewReferenceHandler(facade ReferenceFacade) *ReferenceHandler {
	return &ReferenceHandler{facade: facade}
}

// Reference handles GET /api/reference.
func (h *ReferenceHandler) Reference(c *gin.Context) {
	data, err := h.facade.Reference(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Products handles GET /api/products. A search replaced by a newer one of the same
// session answers 204.
func (h *ReferenceHandler) Products(c *gin.Context) {
	products, err := h.facade.SearchProducts(c.Request.Context(), middleware.SessionID(c), c.Query("search"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.Status(http.StatusNoContent)
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
