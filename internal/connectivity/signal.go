package connectivity

import "sync/atomic"

// Signal 在线/离线信号。
// 由观察网络变化的外部协作方异步更新；核心只在每次拉取决策时采样，
// 不订阅变化回调，也不会因状态翻转中断已在途的拉取。
type Signal struct {
	offline atomic.Bool
}

// NewSignal 创建信号，初始视为在线
func NewSignal() *Signal {
	return &Signal{}
}

// SetOffline 更新离线状态
func (s *Signal) SetOffline(offline bool) {
	s.offline.Store(offline)
}

// Offline 采样当前是否离线
func (s *Signal) Offline() bool {
	return s.offline.Load()
}
