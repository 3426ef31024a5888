package service

import "nesttask/backend/internal/model"

// ── 富化引擎 ────────────────────────────────────────────────
//
// (Routine, Course 集合, Teacher 集合) → 有序 EnrichedSlot 序列的纯函数。
// 无副作用，结果不缓存，每次需要时重算。参照缺失不是错误，走回退链兜底。
// ─────────────────────────────────────────────────────────────

// 回退链末端的哨兵展示值
const (
	FallbackCourseName  = "Unknown Course"
	FallbackCourseCode  = "N/A"
	FallbackTeacherName = "Unknown Teacher"
	FallbackRoom        = "N/A"
)

// Enrich 将路线的每个 Slot 按存储顺序解析为展示就绪记录。
// 结果数量恒等于 len(routine.Slots)，顺序与存储顺序一致。
func Enrich(routine *model.Routine, courses []model.Course, teachers []model.Teacher) []model.EnrichedSlot {
	// 查找表每趟富化只构建一次，供全部 Slot 复用
	courseByID := make(map[string]*model.Course, len(courses))
	for i := range courses {
		courseByID[courses[i].CourseID] = &courses[i]
	}
	teacherByID := make(map[string]*model.Teacher, len(teachers))
	for i := range teachers {
		teacherByID[teachers[i].TeacherID] = &teachers[i]
	}

	enriched := make([]model.EnrichedSlot, 0, len(routine.Slots))
	for _, slot := range routine.Slots {
		es := model.EnrichedSlot{Slot: slot}

		if slot.CourseID != "" {
			es.Course = courseByID[slot.CourseID]
		}
		if slot.TeacherID != "" {
			es.Teacher = teacherByID[slot.TeacherID]
		}

		// 回退链：冗余字段 → 参照字段 → 哨兵值
		es.DisplayCourseName = fallbackChain(
			slot.CourseName,
			courseName(es.Course),
			FallbackCourseName,
		)
		es.DisplayCourseCode = fallbackChain(
			"",
			courseCode(es.Course),
			FallbackCourseCode,
		)
		es.DisplayTeacherName = fallbackChain(
			slot.TeacherName,
			teacherName(es.Teacher),
			FallbackTeacherName,
		)
		es.DisplayRoom = fallbackChain(slot.RoomNumber, "", FallbackRoom)

		enriched = append(enriched, es)
	}
	return enriched
}

// fallbackChain 依次返回第一个非空值
func fallbackChain(denormalized, resolved, sentinel string) string {
	if denormalized != "" {
		return denormalized
	}
	if resolved != "" {
		return resolved
	}
	return sentinel
}

func courseName(c *model.Course) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func courseCode(c *model.Course) string {
	if c == nil {
		return ""
	}
	return c.Code
}

func teacherName(t *model.Teacher) string {
	if t == nil {
		return ""
	}
	return t.Name
}
