package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/dto"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

// DraftHandler manages the editing session endpoints.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

func respondDraft(c *gin.Context, status int, draft *model.Draft, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, dto.NewDraftResponse(draft))
}

// Create handles POST /api/drafts.
func (h *DraftHandler) Create(c *gin.Context) {
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	draft, err := h.facade.CreateDraft(c.Request.Context(), req.Key, model.DoorType(req.DoorType))
	respondDraft(c, http.StatusCreated, draft, err)
}

// Get handles GET /api/drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	draft, err := h.facade.Draft(c.Request.Context(), ids[0])
	respondDraft(c, http.StatusOK, draft, err)
}

// Discard handles DELETE /api/drafts/:id.
func (h *DraftHandler) Discard(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DiscardDraft(c.Request.Context(), ids[0]); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recover handles GET /api/drafts/recover/:key.
func (h *DraftHandler) Recover(c *gin.Context) {
	draft, err := h.facade.RecoverDraft(c.Request.Context(), c.Param("key"))
	respondDraft(c, http.StatusOK, draft, err)
}

// UpdateForm handles PUT /api/drafts/:id/form.
func (h *DraftHandler) UpdateForm(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	var req dto.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.facade.UpdateForm(c.Request.Context(), ids[0], req.ToModel())
	respondDraft(c, http.StatusOK, draft, err)
}

// AddTable handles POST /api/drafts/:id/tables.
func (h *DraftHandler) AddTable(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	draft, err := h.facade.AddTable(c.Request.Context(), ids[0])
	respondDraft(c, http.StatusCreated, draft, err)
}

// RemoveTable handles DELETE /api/drafts/:id/tables/:table.
func (h *DraftHandler) RemoveTable(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table")
	if !ok {
		return
	}
	draft, err := h.facade.RemoveTable(c.Request.Context(), ids[0], ids[1])
	respondDraft(c, http.StatusOK, draft, err)
}

// Select handles PUT /api/drafts/:id/tables/:table/selection.
func (h *DraftHandler) Select(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table")
	if !ok {
		return
	}
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.facade.SelectProduct(c.Request.Context(), ids[0], ids[1], req.Kind, req.Product)
	respondDraft(c, http.StatusOK, draft, err)
}

// AddDoor handles POST /api/drafts/:id/tables/:table/doors.
func (h *DraftHandler) AddDoor(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table")
	if !ok {
		return
	}
	draft, err := h.facade.AddDoor(c.Request.Context(), ids[0], ids[1])
	respondDraft(c, http.StatusCreated, draft, err)
}

// UpdateDoor handles PATCH /api/drafts/:id/tables/:table/doors/:door.
func (h *DraftHandler) UpdateDoor(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table", "door")
	if !ok {
		return
	}
	var req dto.DoorPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.facade.UpdateDoor(c.Request.Context(), ids[0], ids[1], ids[2], toDoorPatch(req))
	respondDraft(c, http.StatusOK, draft, err)
}

func toDoorPatch(req dto.DoorPatchRequest) usecase.DoorPatch {
	patch := usecase.DoorPatch{
		Model:    req.Model,
		Price:    req.Price.Decimal(),
		Quantity: req.Quantity.Float(),
		Height:   req.Height.Float(),
		Width:    req.Width.Float(),
	}
	if req.HasSteelFields() {
		patch.Steel = &usecase.SteelPatch{
			DoorName:    req.DoorName,
			SteelColor:  req.SteelColor,
			CrownCasing: req.CrownCasing,
			Frame:       req.Frame,
			Cladding:    req.Cladding,
			Lock:        req.Lock,
			Peephole:    (*model.Presence)(req.Peephole),
			OpeningSide: (*model.OpeningSide)(req.OpeningSide),
			Promog:      (*model.Presence)(req.Promog),
		}
	}
	return patch
}

// RemoveDoor handles DELETE /api/drafts/:id/tables/:table/doors/:door.
func (h *DraftHandler) RemoveDoor(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table", "door")
	if !ok {
		return
	}
	draft, err := h.facade.RemoveDoor(c.Request.Context(), ids[0], ids[1], ids[2])
	respondDraft(c, http.StatusOK, draft, err)
}

// AddComponent handles POST /api/drafts/:id/tables/:table/doors/:door/components.
func (h *DraftHandler) AddComponent(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table", "door")
	if !ok {
		return
	}
	var req dto.ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	draft, err := h.facade.AddComponent(c.Request.Context(), ids[0], ids[1], ids[2], model.ComponentKind(req.Kind))
	respondDraft(c, http.StatusCreated, draft, err)
}

// UpdateComponent handles PATCH /api/drafts/:id/tables/:table/doors/:door/components/:kind/:index.
func (h *DraftHandler) UpdateComponent(c *gin.Context) {
	ids, ok := uuidParams(c, "id", "table", "door")
	if !ok {
		return
	}
	kind, err := model.ParseComponentKind(c.Param("kind"))
	if err != nil {
		writeError(c, err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: row index %q", domainErrors.ErrNotFound, c.Param("index")))
		return
	}
	var req dto.ComponentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	patch, err := toComponentPatch(req)
	if err != nil {
		writeError(c, err)
		return
	}
	draft, err := h.facade.UpdateComponent(c.Request.Context(), ids[0], ids[1], ids[2], kind, index, patch)
	respondDraft(c, http.StatusOK, draft, err)
}

func toComponentPatch(req dto.ComponentPatchRequest) (usecase.ComponentPatch, error) {
	patch := usecase.ComponentPatch{
		Model:       req.Model,
		Price:       req.Price.Decimal(),
		Quantity:    req.Quantity.Float(),
		Height:      req.Height.Float(),
		Width:       req.Width.Float(),
		CasingRange: req.CasingRange,
		Name:        req.Name,
	}
	if req.CasingType != nil {
		t, err := model.ParseCasingType(*req.CasingType)
		if err != nil {
			return usecase.ComponentPatch{}, err
		}
		patch.CasingType = &t
	}
	if req.CasingFormula != nil {
		f, err := model.ParseCasingFormula(*req.CasingFormula)
		if err != nil {
			return usecase.ComponentPatch{}, err
		}
		patch.Formula = &f
	}
	if req.AccessoryType != nil {
		t, err := model.ParseAccessoryType(*req.AccessoryType)
		if err != nil {
			return usecase.ComponentPatch{}, err
		}
		patch.AccessoryType = &t
	}
	return patch, nil
}

// Discount handles PUT /api/drafts/:id/discount.
func (h *DraftHandler) Discount(c *gin.Context) {
	ids, ok := uuidParams(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	value := req.Value.Decimal()
	draft, err := h.facade.EditDiscount(c.Request.Context(), ids[0], discount.Field(req.Field), *value)
	respondDraft(c, http.StatusOK, draft, err)
}
