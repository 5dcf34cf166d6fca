package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderHandler runs calculation and submission of a draft.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Calculate handles POST /api/drafts/:id/calculate.
func (h *OrderHandler) Calculate(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	draft, err := h.facade.Calculate(c.Request.Context(), ids[0])
	respondDraft(c, http.StatusOK, draft, err)
}

// Submit handles POST /api/drafts/:id/submit. The created order is returned as sent
// by the resource API.
func (h *OrderHandler) Submit(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	created, err := h.facade.Submit(c.Request.Context(), ids[0])
	if err != nil {
		writeError(c, err)
		return
	}
	if len(created) == 0 {
		c.Status(http.StatusCreated)
		return
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", created)
}
