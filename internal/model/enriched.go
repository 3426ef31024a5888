package model

// EnrichedSlot 展示就绪的派生视图：Slot 与其解析后的参照对象及最终展示字符串。
// 临时数据，随用随算，从不落盘。
type EnrichedSlot struct {
	Slot

	// 解析成功时为参照对象，缓存缺失时为 nil
	Course  *Course  `json:"course,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`

	// 回退链计算后的最终展示字符串（冗余字段 → 参照字段 → 哨兵值）
	DisplayCourseName  string `json:"display_course_name"`
	DisplayCourseCode  string `json:"display_course_code"`
	DisplayTeacherName string `json:"display_teacher_name"`
	DisplayRoom        string `json:"display_room"`
}
