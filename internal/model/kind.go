package model

import "fmt"

// Kind 缓存记录类型：三类参照集合各自独立同步、独立存储
type Kind string

const (
	KindRoutine Kind = "routine"
	KindCourse  Kind = "course"
	KindTeacher Kind = "teacher"
)

// AllKinds 返回全部记录类型（预取默认覆盖全量）
func AllKinds() []Kind {
	return []Kind{KindRoutine, KindCourse, KindTeacher}
}

// ParseKind 解析记录类型字符串
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRoutine, KindCourse, KindTeacher:
		return Kind(s), nil
	}
	return "", fmt.Errorf("未知的记录类型: %q", s)
}

// Collection 返回该类型在远端与本地存储中的集合名
func (k Kind) Collection() string {
	switch k {
	case KindRoutine:
		return "routines"
	case KindCourse:
		return "courses"
	case KindTeacher:
		return "teachers"
	}
	return string(k)
}
