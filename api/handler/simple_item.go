package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	simpleUC "github.com/fastygo/tidydo/usecase/simpleitem"
)

type SimpleItemHandler struct {
	baseHandler
	uc *simpleUC.UseCase
}

func NewSimpleItemHandler(uc *simpleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SimpleItemHandler {
	return &SimpleItemHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List simple items; with categoryId also the per-column counts
// @Tags simple-items
// @Router /api/v1/simple-items [get]
func (h *SimpleItemHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	categoryID := string(ctx.QueryArgs().Peek("categoryId"))
	if categoryID == "" {
		items, err := h.uc.List(stdCtx)
		if err != nil {
			h.respondError(ctx, stdCtx, err)
			return
		}
		h.respondSuccess(ctx, http.StatusOK, items)
		return
	}

	items, err := h.uc.ListByCategory(stdCtx, categoryID)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	counts, err := h.uc.CountsByStatus(stdCtx, categoryID)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(items, map[string]interface{}{"counts": counts}))
}

// @Summary Create simple item
// @Tags simple-items
// @Router /api/v1/simple-items [post]
func (h *SimpleItemHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.SimpleItemRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, req.CategoryID, req.Title, domain.SimpleStatus(req.Status))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update simple item
// @Tags simple-items
// @Router /api/v1/simple-items/{id} [put]
func (h *SimpleItemHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var patch simpleUC.Patch
	if !h.decode(ctx, &patch) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Move simple item to another column
// @Tags simple-items
// @Router /api/v1/simple-items/{id}/status [put]
func (h *SimpleItemHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.StatusRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateStatus(stdCtx, id, domain.SimpleStatus(req.Status))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Move several simple items
// @Tags simple-items
// @Router /api/v1/simple-items/status [post]
func (h *SimpleItemHandler) BatchStatus(ctx *fasthttp.RequestCtx) {
	var req transport.SimpleBatchStatusRequest
	if !h.decode(ctx, &req) {
		return
	}
	changes := make([]simpleUC.StatusChange, 0, len(req.Changes))
	for _, ch := range req.Changes {
		changes = append(changes, simpleUC.StatusChange{ID: ch.ID, Status: domain.SimpleStatus(ch.Status)})
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	results, err := h.uc.BatchUpdateStatus(stdCtx, changes)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, results)
}

// @Summary Delete simple item
// @Tags simple-items
// @Router /api/v1/simple-items/{id} [delete]
func (h *SimpleItemHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
