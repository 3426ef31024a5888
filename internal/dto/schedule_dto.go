package dto

import "nesttask/backend/internal/model"

// ScheduleRequest 按日查询课表请求
type ScheduleRequest struct {
	RoutineID string `form:"routine_id"`
	Date      string `form:"date"` // YYYY-MM-DD；缺省为今天
	Query     string `form:"q"`
}

// RoutineResponse 可选课程表条目
type RoutineResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Semester  string `json:"semester"`
	IsActive  bool   `json:"is_active"`
	SlotCount int    `json:"slot_count"`
}

// SlotResponse 富化后的单次排课展示记录
type SlotResponse struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CourseName  string `json:"course_name"`
	CourseCode  string `json:"course_code"`
	TeacherName string `json:"teacher_name"`
	Room        string `json:"room"`
}

// DayScheduleResponse 按日课表响应
type DayScheduleResponse struct {
	RoutineID string         `json:"routine_id"`
	Date      string         `json:"date"`
	Day       string         `json:"day"`
	Slots     []SlotResponse `json:"slots"`
}

// ToRoutineResponses Routine 列表 → 响应列表
func ToRoutineResponses(routines []model.Routine) []RoutineResponse {
	out := make([]RoutineResponse, 0, len(routines))
	for _, r := range routines {
		out = append(out, ToRoutineResponse(&r))
	}
	return out
}

// ToRoutineResponse Routine → 响应条目
func ToRoutineResponse(r *model.Routine) RoutineResponse {
	return RoutineResponse{
		ID:        r.RoutineID,
		Name:      r.Name,
		Semester:  r.Semester,
		IsActive:  r.IsActive,
		SlotCount: len(r.Slots),
	}
}

// ToSlotResponses EnrichedSlot 列表 → 响应列表
func ToSlotResponses(slots []model.EnrichedSlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			ID:          s.SlotID,
			Day:         string(s.Day),
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			CourseName:  s.DisplayCourseName,
			CourseCode:  s.DisplayCourseCode,
			TeacherName: s.DisplayTeacherName,
			Room:        s.DisplayRoom,
		})
	}
	return out
}
