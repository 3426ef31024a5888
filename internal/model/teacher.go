package model

import "strings"

// Teacher 教师参照数据：被零或多个 Slot 弱引用
type Teacher struct {
	TeacherID string `json:"id"`
	Name      string `json:"name"`
}

// Initials 由姓名派生的缩写展示标签（如 "Abdur Rahman" → "AR"）
func (t *Teacher) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(t.Name) {
		r := []rune(part)
		if len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.ToUpper(b.String())
}
