package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	"github.com/fastygo/tidydo/usecase/app"
	"github.com/fastygo/tidydo/usecase/view"
)

type ViewHandler struct {
	baseHandler
	state *app.Container
}

func NewViewHandler(state *app.Container, adapter *httpcontext.Adapter, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		baseHandler: newBaseHandler(adapter, logger),
		state:       state,
	}
}

type viewPayload struct {
	Selection view.Selection `json:"selection"`
	Items     interface{}    `json:"items"`
}

// @Summary Current selection and the items it shows
// @Tags view
// @Router /api/v1/view [get]
func (h *ViewHandler) Current(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, viewPayload{
		Selection: h.state.Selection(),
		Items:     h.state.CurrentItems(),
	})
}

// @Summary Change the selection
// @Tags view
// @Router /api/v1/view [patch]
func (h *ViewHandler) Patch(ctx *fasthttp.RequestCtx) {
	var req transport.ViewPatchRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.ToggleSort != nil && !view.SortField(*req.ToggleSort).Valid() {
		h.badRequest(ctx, "unknown sort field "+*req.ToggleSort)
		return
	}

	if req.ViewAll != nil {
		if *req.ViewAll {
			h.state.EnterViewAll()
		} else {
			h.state.ExitViewAll()
		}
	}
	if req.SelectedCategoryID != nil {
		h.state.SelectCategory(*req.SelectedCategoryID)
	}
	if req.ToggleSort != nil {
		h.state.ToggleSort(view.SortField(*req.ToggleSort))
	}
	if req.SearchQuery != nil {
		h.state.SetSearch(*req.SearchQuery)
	}
	if req.ClearFilter {
		h.state.SetFilter(nil)
	} else if req.Filter != nil {
		h.state.SetFilter(req.Filter)
	}
	if req.ToggleShowArchived {
		h.state.ToggleShowArchived()
	}
	h.Current(ctx)
}
