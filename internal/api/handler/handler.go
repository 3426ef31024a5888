package handler

import (
	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Schedule *ScheduleHandler
	Sync     *SyncHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, signal *connectivity.Signal) *Handler {
	return &Handler{
		Schedule: NewScheduleHandler(svc.Schedule),
		Sync:     NewSyncHandler(svc.Sync, signal),
		Export:   NewExportHandler(svc.Export),
	}
}
