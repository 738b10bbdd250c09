package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/internal/infrastructure/monitor"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	"github.com/fastygo/tidydo/usecase/app"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
	state   *app.Container
}

func NewHealthHandler(mon *monitor.Monitor, state *app.Container, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
		state:       state,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	storage := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"storage":   storage,
		"app":       h.state.Status(),
	}

	if storage.Online {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "storage unavailable", payload))
}
