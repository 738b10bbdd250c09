package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/pkg/httpcontext"
	backupUC "github.com/fastygo/tidydo/usecase/backup"
)

type BackupHandler struct {
	baseHandler
	uc  *backupUC.UseCase
	now func() time.Time
}

func NewBackupHandler(uc *backupUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		now:         time.Now,
	}
}

// @Summary Download every stored key as a backup document
// @Tags backup
// @Router /api/v1/backup/export [get]
func (h *BackupHandler) Export(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.Export(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.attachment(ctx, backupUC.FileName(h.now()), body)
}

// @Summary Import a backup document
// @Tags backup
// @Router /api/v1/backup/import [post]
func (h *BackupHandler) Import(ctx *fasthttp.RequestCtx) {
	var req transport.ImportRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Import(stdCtx, req.Document, backupUC.ImportOptions{
		ClearExisting: req.ClearExisting,
		MergeData:     req.MergeData,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Run a backup now
// @Description Written to the configured directory when possible, otherwise returned as a download.
// @Tags backup
// @Router /api/v1/backup/run [post]
func (h *BackupHandler) Run(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.ManualBackup(stdCtx, h.now())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	if backupUC.IsDownload(outcome) {
		h.attachment(ctx, outcome.FileName, outcome.Data)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, outcome)
}

// @Summary Auto-backup status
// @Tags backup
// @Router /api/v1/backup/status [get]
func (h *BackupHandler) Status(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.uc.Status(stdCtx, h.now())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Stored keys with type and size
// @Tags backup
// @Router /api/v1/backup/stats [get]
func (h *BackupHandler) Stats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Set the auto-backup directory
// @Tags backup
// @Router /api/v1/backup/directory [put]
func (h *BackupHandler) SetDirectory(ctx *fasthttp.RequestCtx) {
	var req transport.BackupDirectoryRequest
	if !h.decode(ctx, &req) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	target, err := h.uc.SetBackupDirectory(stdCtx, req.Path)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, target)
}

func (h *BackupHandler) attachment(ctx *fasthttp.RequestCtx, name string, body []byte) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}
