package service

import (
	"go.uber.org/zap"

	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/remote"
	"nesttask/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Sync     SyncService
	Schedule ScheduleService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	store repository.CacheStore,
	source remote.Source,
	signal *connectivity.Signal,
	logger *zap.Logger,
) *Service {
	syncSvc := NewSyncService(store, source, signal, logger)
	scheduleSvc := NewScheduleService(syncSvc, logger)
	exportSvc := NewExportService(scheduleSvc, logger)

	return &Service{
		Sync:     syncSvc,
		Schedule: scheduleSvc,
		Export:   exportSvc,
	}
}
