package model

import "fmt"

// Routine 课程表路线：一个学期的完整周课表，独占其下的全部 Slot
type Routine struct {
	RoutineID string `json:"id"`
	Name      string `json:"name"`
	Semester  string `json:"semester"`
	IsActive  bool   `json:"is_active"`
	Slots     []Slot `json:"slots"`
}

// Slot 一次排课：归属于且仅归属于一个 Routine
//
// course_name / teacher_name / room_number 是冗余回退字段，
// 远端写入时与参照数据一致；参照缓存缺失时用于兜底展示，
// 这份冗余是离线容错的一部分，不要当作可去除的重复数据。
type Slot struct {
	SlotID    string  `json:"id"`
	Day       Weekday `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`

	// 弱引用：仅保存标识符，参照对象缺失不影响 Slot 本身
	CourseID  string `json:"course_id,omitempty"`
	TeacherID string `json:"teacher_id,omitempty"`

	// 冗余回退字段
	CourseName  string `json:"course_name,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
	RoomNumber  string `json:"room_number,omitempty"`
}

// Validate 校验 Slot 的星期枚举与 start < end 不变式
func (s *Slot) Validate() error {
	if !s.Day.Valid() {
		return fmt.Errorf("slot %s: 非法星期 %q", s.SlotID, s.Day)
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return fmt.Errorf("slot %s: %w", s.SlotID, err)
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return fmt.Errorf("slot %s: %w", s.SlotID, err)
	}
	if start >= end {
		return fmt.Errorf("slot %s: 开始时间 %s 不早于结束时间 %s", s.SlotID, s.StartTime, s.EndTime)
	}
	return nil
}
