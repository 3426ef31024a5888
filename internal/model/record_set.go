package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordSet 某一 kind 的缓存记录集合。
// 不变式：要么完整来自最近一次成功同步（Valid = true），要么整体标记为失效；
// 协调层的原子替换保证不会出现部分写入的子集。
// Records 保留远端返回顺序（路线选择的 tie-break 依赖该顺序）。
type RecordSet struct {
	Kind     Kind              `json:"kind"`
	Records  []json.RawMessage `json:"records"`
	SyncedAt time.Time         `json:"synced_at"`
	Valid    bool              `json:"valid"`
}

// recordKey 用于从原始记录中提取标识符
type recordKey struct {
	ID string `json:"id"`
}

// RecordID 提取原始记录的标识符
func RecordID(raw json.RawMessage) (string, error) {
	var k recordKey
	if err := json.Unmarshal(raw, &k); err != nil {
		return "", fmt.Errorf("解析记录标识符失败: %w", err)
	}
	if k.ID == "" {
		return "", fmt.Errorf("记录缺少标识符")
	}
	return k.ID, nil
}

// Routines 将集合解码为 Routine 列表；kind 不匹配时报错
func (s *RecordSet) Routines() ([]Routine, error) {
	if s.Kind != KindRoutine {
		return nil, fmt.Errorf("记录类型不匹配: 期望 %s, 实际 %s", KindRoutine, s.Kind)
	}
	out := make([]Routine, 0, len(s.Records))
	for _, raw := range s.Records {
		var r Routine
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("解码 routine 记录失败: %w", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Courses 将集合解码为 Course 列表；kind 不匹配时报错
func (s *RecordSet) Courses() ([]Course, error) {
	if s.Kind != KindCourse {
		return nil, fmt.Errorf("记录类型不匹配: 期望 %s, 实际 %s", KindCourse, s.Kind)
	}
	out := make([]Course, 0, len(s.Records))
	for _, raw := range s.Records {
		var c Course
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("解码 course 记录失败: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Teachers 将集合解码为 Teacher 列表；kind 不匹配时报错
func (s *RecordSet) Teachers() ([]Teacher, error) {
	if s.Kind != KindTeacher {
		return nil, fmt.Errorf("记录类型不匹配: 期望 %s, 实际 %s", KindTeacher, s.Kind)
	}
	out := make([]Teacher, 0, len(s.Records))
	for _, raw := range s.Records {
		var t Teacher
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("解码 teacher 记录失败: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}
