package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nesttask/backend/internal/service"
	"nesttask/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRoutineICS 导出课程表为 iCalendar
// GET /api/v1/routines/:id/export.ics
func (h *ExportHandler) ExportRoutineICS(c *gin.Context) {
	routineID := c.Param("id")

	buf, filename, err := h.exportSvc.ExportRoutineICS(c.Request.Context(), routineID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotFound):
			response.NotFound(c, 20002, service.ErrRoutineNotFound.Error())
		case errors.Is(err, service.ErrNoRoutines):
			response.NotFound(c, 20001, service.ErrNoRoutines.Error())
		case errors.Is(err, service.ErrExportNoSlots):
			response.NotFound(c, 40001, service.ErrExportNoSlots.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
