package errors

import "errors"

// ErrCacheEmpty 指定类型的缓存集合尚不存在（从未成功同步过，或已被清空）
var ErrCacheEmpty = errors.New("缓存为空")

// ErrCacheWrite 本地缓存写入被拒绝（如存储配额不足）；
// 调用方应继续使用本次拉取到的内存数据，磁盘上保留旧缓存
var ErrCacheWrite = errors.New("缓存写入失败")
