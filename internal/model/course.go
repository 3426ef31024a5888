package model

// Course 课程参照数据：被零或多个 Slot 弱引用
type Course struct {
	CourseID string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
}
