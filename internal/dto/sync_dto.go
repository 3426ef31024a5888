package dto

// SyncRequest 手动刷新请求；kinds 为空表示刷新全部
type SyncRequest struct {
	Kinds []string `json:"kinds"`
}

// ConnectivityRequest 连通性协作方上报的在线/离线状态
type ConnectivityRequest struct {
	Offline *bool `json:"offline" binding:"required"`
}
