package service

import (
	"sort"
	"strings"
	"time"

	"nesttask/backend/internal/model"
)

// ── 查询/过滤引擎 ──
//
// 日期匹配 + 可选自由文本子串匹配（大小写不敏感，不做分词/模糊），
// 结果按开始时间升序，时间相同保持存储顺序。

// FilterDay 从富化序列中筛出所选日期对应星期的 Slot。
// query 为空时只按星期过滤；否则要求 query 为课程名/课程代码/
// 教室/教师名之一的子串（大小写不敏感）。
func FilterDay(slots []model.EnrichedSlot, date time.Time, query string) []model.EnrichedSlot {
	day := model.WeekdayOf(date)
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]model.EnrichedSlot, 0, len(slots))
	for _, s := range slots {
		if s.Day != day {
			continue
		}
		if q != "" && !matchesQuery(&s, q) {
			continue
		}
		matched = append(matched, s)
	}

	// 稳定排序：开始时间升序，平局保持存储顺序
	sort.SliceStable(matched, func(i, j int) bool {
		return clockMinutes(matched[i].StartTime) < clockMinutes(matched[j].StartTime)
	})
	return matched
}

func matchesQuery(s *model.EnrichedSlot, q string) bool {
	return strings.Contains(strings.ToLower(s.DisplayCourseName), q) ||
		strings.Contains(strings.ToLower(s.DisplayCourseCode), q) ||
		strings.Contains(strings.ToLower(s.DisplayRoom), q) ||
		strings.Contains(strings.ToLower(s.DisplayTeacherName), q)
}

// clockMinutes 排序用时间换算；非法时间排最前（入库前已校验，兜底而已）
func clockMinutes(s string) int {
	m, err := model.ParseClock(s)
	if err != nil {
		return -1
	}
	return m
}
