package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	itemUC "github.com/fastygo/tidydo/usecase/item"
)

type ItemHandler struct {
	baseHandler
	uc *itemUC.UseCase
}

func NewItemHandler(uc *itemUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List items, optionally of one category
// @Tags items
// @Router /api/v1/items [get]
func (h *ItemHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		items []domain.Item
		err   error
	)
	if categoryID := string(ctx.QueryArgs().Peek("categoryId")); categoryID != "" {
		items, err = h.uc.ListByCategory(stdCtx, categoryID, queryBool(ctx, "showArchived"))
	} else {
		items, err = h.uc.List(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Item with display fields
// @Tags items
// @Router /api/v1/items/{id} [get]
func (h *ItemHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	display, err := h.uc.Display(stdCtx, id)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, display)
}

// @Summary Create item
// @Tags items
// @Router /api/v1/items [post]
func (h *ItemHandler) Create(ctx *fasthttp.RequestCtx) {
	var in itemUC.CreateInput
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

// @Summary Update item
// @Description Archived items are refused with 409.
// @Tags items
// @Router /api/v1/items/{id} [put]
func (h *ItemHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var patch itemUC.Patch
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

// @Summary Delete item
// @Tags items
// @Router /api/v1/items/{id} [delete]
func (h *ItemHandler) Delete(ctx *fasthttp.RequestCtx) {
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

// @Summary Change item status
// @Tags items
// @Router /api/v1/items/{id}/status [put]
func (h *ItemHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
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

	updated, err := h.uc.UpdateStatus(stdCtx, id, domain.NormalizeStatus(req.Status))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Archive, unarchive or toggle an item
// @Tags items
// @Router /api/v1/items/{id}/archive [put]
func (h *ItemHandler) Archive(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}
	var req transport.ArchiveRequest
	if len(ctx.PostBody()) > 0 && !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		updated domain.Item
		err     error
	)
	if req.Archived == nil {
		updated, err = h.uc.ToggleArchived(stdCtx, id)
	} else {
		updated, err = h.uc.SetArchived(stdCtx, id, *req.Archived)
	}
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Change the status of several items
// @Tags items
// @Router /api/v1/items/batch/status [post]
func (h *ItemHandler) BatchStatus(ctx *fasthttp.RequestCtx) {
	var req transport.BatchStatusRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.BatchUpdateStatus(stdCtx, req.IDs, domain.NormalizeStatus(req.Status)))
}

// @Summary Archive or unarchive several items
// @Tags items
// @Router /api/v1/items/batch/archive [post]
func (h *ItemHandler) BatchArchive(ctx *fasthttp.RequestCtx) {
	var req transport.BatchArchiveRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondSuccess(ctx, http.StatusOK, h.uc.BatchArchive(stdCtx, req.IDs, req.Archived))
}

// @Summary Item statistics
// @Tags items
// @Router /api/v1/items/stats [get]
func (h *ItemHandler) Statistics(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Statistics(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

var exportContentTypes = map[string]string{
	itemUC.FormatJSON: "application/json",
	itemUC.FormatCSV:  "text/csv; charset=utf-8",
	itemUC.FormatYAML: "application/yaml",
}

// @Summary Export items as json, csv or yaml
// @Tags items
// @Router /api/v1/items/export [get]
func (h *ItemHandler) Export(ctx *fasthttp.RequestCtx) {
	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = itemUC.FormatJSON
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	body, err := h.uc.Export(stdCtx, string(ctx.QueryArgs().Peek("categoryId")), format)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	ctx.Response.Header.SetContentType(exportContentTypes[format])
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="tidydo-items.`+format+`"`)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}
