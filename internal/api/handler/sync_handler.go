package handler

import (
	"github.com/gin-gonic/gin"

	"nesttask/backend/internal/connectivity"
	"nesttask/backend/internal/dto"
	"nesttask/backend/internal/model"
	"nesttask/backend/internal/service"
	"nesttask/backend/pkg/response"
)

// SyncHandler 同步模块 HTTP 处理器
type SyncHandler struct {
	syncSvc service.SyncService
	signal  *connectivity.Signal
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncSvc service.SyncService, signal *connectivity.Signal) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc, signal: signal}
}

// Refresh 手动刷新（阻塞）
// POST /api/v1/sync
func (h *SyncHandler) Refresh(c *gin.Context) {
	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	kinds, ok := parseKinds(c, req.Kinds)
	if !ok {
		return
	}

	if err := h.syncSvc.Refresh(c.Request.Context(), kinds...); err != nil {
		// 阻塞刷新失败上抛给调用方；缓存保持原状
		response.ServiceUnavailable(c, 30001, "刷新失败，已保留本地缓存")
		return
	}

	response.OK(c, h.syncSvc.State(c.Request.Context()))
}

// GetState 获取加载/错误状态与各类型同步元数据
// GET /api/v1/sync/state
func (h *SyncHandler) GetState(c *gin.Context) {
	response.OK(c, h.syncSvc.State(c.Request.Context()))
}

// UpdateConnectivity 连通性协作方上报在线/离线状态
// PUT /api/v1/connectivity
func (h *SyncHandler) UpdateConnectivity(c *gin.Context) {
	var req dto.ConnectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	h.signal.SetOffline(*req.Offline)
	response.OK(c, gin.H{"offline": *req.Offline})
}

// ClearCache 清空某类型的本地缓存
// DELETE /api/v1/cache/:kind
func (h *SyncHandler) ClearCache(c *gin.Context) {
	kind, err := model.ParseKind(c.Param("kind"))
	if err != nil {
		response.BadRequest(c, 10002, err.Error())
		return
	}

	if err := h.syncSvc.ClearCache(c.Request.Context(), kind); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// parseKinds 解析请求中的 kind 列表；为空默认全部
func parseKinds(c *gin.Context, raw []string) ([]model.Kind, bool) {
	if len(raw) == 0 {
		return model.AllKinds(), true
	}
	kinds := make([]model.Kind, 0, len(raw))
	for _, s := range raw {
		kind, err := model.ParseKind(s)
		if err != nil {
			response.BadRequest(c, 10002, err.Error())
			return nil, false
		}
		kinds = append(kinds, kind)
	}
	return kinds, true
}
