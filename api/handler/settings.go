package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	settingsUC "github.com/fastygo/tidydo/usecase/settings"
)

type SettingsHandler struct {
	baseHandler
	uc *settingsUC.UseCase
}

func NewSettingsHandler(uc *settingsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Merged configuration
// @Tags settings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.Load(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, doc)
}

// @Summary Replace the configuration; it is merged against the defaults
// @Tags settings
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Put(ctx *fasthttp.RequestCtx) {
	var doc map[string]any
	if !h.decode(ctx, &doc) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.uc.Save(stdCtx, doc)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, saved)
}

// @Summary Patch one configuration section
// @Tags settings
// @Router /api/v1/settings/section [patch]
func (h *SettingsHandler) PatchSection(ctx *fasthttp.RequestCtx) {
	var req transport.SettingsSectionRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.uc.Update(stdCtx, req.Section, req.Patch)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, saved)
}

// @Summary Restore the default configuration
// @Tags settings
// @Router /api/v1/settings/reset [post]
func (h *SettingsHandler) Reset(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.Reset(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, doc)
}
