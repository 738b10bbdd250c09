package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	categoryUC "github.com/fastygo/tidydo/usecase/category"
	itemUC "github.com/fastygo/tidydo/usecase/item"
	"github.com/fastygo/tidydo/usecase/view"
)

type CategoryHandler struct {
	baseHandler
	uc    *categoryUC.UseCase
	items *itemUC.UseCase
}

func NewCategoryHandler(uc *categoryUC.UseCase, items *itemUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		items:       items,
	}
}

// @Summary List categories in display order
// @Tags categories
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	categories, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	counts, err := h.items.Counts(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(categories, map[string]interface{}{"itemCounts": counts}))
}

// @Summary Create category
// @Tags categories
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(ctx *fasthttp.RequestCtx) {
	var in categoryUC.CreateInput
	if !h.decode(ctx, &in) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, in)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update category
// @Tags categories
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var patch categoryUC.Patch
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

// @Summary Expand or collapse category
// @Tags categories
// @Router /api/v1/categories/{id}/expanded [put]
func (h *CategoryHandler) SetExpanded(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.ExpandRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.SetExpanded(stdCtx, id, req.Expanded)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete category with its items
// @Tags categories
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Move category one step up or down
// @Tags categories
// @Router /api/v1/categories/{id}/move [post]
func (h *CategoryHandler) Move(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.MoveRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.uc.Move(stdCtx, id, categoryUC.Direction(req.Direction))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondOrder(ctx, stdCtx, moved)
}

// @Summary Reorder category by drag target or drop line
// @Tags categories
// @Router /api/v1/categories/{id}/reorder [post]
func (h *CategoryHandler) Reorder(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.ReorderRequest
	if !h.decode(ctx, &req) {
		return
	}
	if (req.TargetIndex == nil) == (req.DropIndex == nil) {
		h.badRequest(ctx, "exactly one of targetIndex and dropIndex is required")
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		moved bool
		err   error
	)
	if req.TargetIndex != nil {
		moved, err = h.uc.ReorderByDrag(stdCtx, id, *req.TargetIndex)
	} else {
		moved, err = h.uc.ReorderByDrop(stdCtx, id, *req.DropIndex)
	}
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondOrder(ctx, stdCtx, moved)
}

// respondOrder answers with the category list in its new order and whether anything moved.
func (h *CategoryHandler) respondOrder(ctx *fasthttp.RequestCtx, stdCtx context.Context, moved bool) {
	categories, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(categories, map[string]interface{}{"moved": moved}))
}

// @Summary Items shown for a category
// @Description Filter categories compute membership; others list their own items.
// @Tags categories
// @Router /api/v1/categories/{id}/items [get]
func (h *CategoryHandler) Items(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Get(stdCtx, id); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	categories, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	items, err := h.items.List(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	sel := view.Default()
	sel.SelectCategory(id)
	sel.ShowArchived = queryBool(ctx, "showArchived")
	sel.SetSearch(string(ctx.QueryArgs().Peek("q")))
	if field := view.SortField(ctx.QueryArgs().Peek("sort")); field.Valid() {
		sel.SortField = field
		if view.SortOrder(ctx.QueryArgs().Peek("order")) == view.Desc {
			sel.SortOrder = view.Desc
		}
	}
	h.respondSuccess(ctx, http.StatusOK, view.Derive(sel, categories, items))
}
