package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/pkg/httpcontext"
	reportUC "github.com/fastygo/tidydo/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Comprehensive report
// @Param days query int false "trend window, default 30"
// @Tags reports
// @Router /api/v1/reports [get]
func (h *ReportHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	days := parseInt(string(ctx.QueryArgs().Peek("days")), reportUC.DefaultTrendDays)
	report, err := h.uc.Report(stdCtx, days)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
