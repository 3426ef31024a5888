package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"nesttask/backend/internal/model"
)

// ── 课表模块业务错误 ──

var (
	// ErrNoRoutines 终态空状态：无任何可选课程表（用户可见，不可重试）
	ErrNoRoutines      = errors.New("暂无可用课程表")
	ErrRoutineNotFound = errors.New("课程表不存在")
)

// ── ScheduleService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 读路径缓存优先（经由 SyncService.Load），离线时服务陈旧数据。
//   - 默认课程表选择是显式函数：存储顺序中第一个 active，否则第一个。
//     多个 active 在数据层面是合法可表示的，这里只做 tie-break。
//   - 课程/教师参照集合加载失败只降级（回退链兜底），不阻断课表展示。
// ─────────────────────────────────────────────────────────────

// ScheduleService 课表查询业务接口
type ScheduleService interface {
	// Routines 可供选择的全部课程表
	Routines(ctx context.Context) ([]model.Routine, error)
	// DefaultRoutine 默认课程表：存储顺序中第一个 active，否则第一个
	DefaultRoutine(ctx context.Context) (*model.Routine, error)
	// EnrichRoutine 指定课程表的整周富化序列；routineID 为空取默认
	EnrichRoutine(ctx context.Context, routineID string) (*model.Routine, []model.EnrichedSlot, error)
	// DaySchedule 指定日期（所在星期）经富化与过滤后的 Slot 序列
	DaySchedule(ctx context.Context, routineID string, date time.Time, query string) ([]model.EnrichedSlot, error)
}

type scheduleService struct {
	sync   SyncService
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(sync SyncService, logger *zap.Logger) ScheduleService {
	return &scheduleService{sync: sync, logger: logger}
}

func (s *scheduleService) Routines(ctx context.Context) ([]model.Routine, error) {
	set, err := s.sync.Load(ctx, model.KindRoutine)
	if err != nil {
		return nil, err
	}
	routines, err := set.Routines()
	if err != nil {
		return nil, err
	}
	for i := range routines {
		routines[i].Slots = s.sanitizeSlots(routines[i].RoutineID, routines[i].Slots)
	}
	return routines, nil
}

func (s *scheduleService) DefaultRoutine(ctx context.Context) (*model.Routine, error) {
	routines, err := s.Routines(ctx)
	if err != nil {
		return nil, err
	}
	return pickDefault(routines)
}

func (s *scheduleService) EnrichRoutine(ctx context.Context, routineID string) (*model.Routine, []model.EnrichedSlot, error) {
	routine, err := s.resolveRoutine(ctx, routineID)
	if err != nil {
		return nil, nil, err
	}

	courses, teachers := s.loadReferences(ctx)
	return routine, Enrich(routine, courses, teachers), nil
}

func (s *scheduleService) DaySchedule(ctx context.Context, routineID string, date time.Time, query string) ([]model.EnrichedSlot, error) {
	_, enriched, err := s.EnrichRoutine(ctx, routineID)
	if err != nil {
		return nil, err
	}
	return FilterDay(enriched, date, query), nil
}

// ── 私有辅助方法 ──

// resolveRoutine 按 ID 查找课程表；ID 为空时走默认选择
func (s *scheduleService) resolveRoutine(ctx context.Context, routineID string) (*model.Routine, error) {
	routines, err := s.Routines(ctx)
	if err != nil {
		return nil, err
	}
	if routineID == "" {
		return pickDefault(routines)
	}
	for i := range routines {
		if routines[i].RoutineID == routineID {
			return &routines[i], nil
		}
	}
	return nil, ErrRoutineNotFound
}

// loadReferences 尽力加载课程/教师参照集合。
// 加载失败（如离线且无缓存）不是错误：富化回退链会兜底展示。
func (s *scheduleService) loadReferences(ctx context.Context) ([]model.Course, []model.Teacher) {
	var courses []model.Course
	if set, err := s.sync.Load(ctx, model.KindCourse); err == nil {
		if decoded, err := set.Courses(); err == nil {
			courses = decoded
		}
	} else {
		s.logger.Debug("课程参照集合不可用，走回退展示", zap.Error(err))
	}

	var teachers []model.Teacher
	if set, err := s.sync.Load(ctx, model.KindTeacher); err == nil {
		if decoded, err := set.Teachers(); err == nil {
			teachers = decoded
		}
	} else {
		s.logger.Debug("教师参照集合不可用，走回退展示", zap.Error(err))
	}

	return courses, teachers
}

// sanitizeSlots 过滤非法 Slot（星期枚举、start < end），坏记录记日志丢弃，
// 绝不进入富化输出
func (s *scheduleService) sanitizeSlots(routineID string, slots []model.Slot) []model.Slot {
	out := slots[:0]
	for i := range slots {
		if err := slots[i].Validate(); err != nil {
			s.logger.Warn("丢弃非法 slot",
				zap.String("routine_id", routineID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, slots[i])
	}
	return out
}

// pickDefault 默认课程表 tie-break：存储顺序中第一个 active，否则第一个
func pickDefault(routines []model.Routine) (*model.Routine, error) {
	if len(routines) == 0 {
		return nil, ErrNoRoutines
	}
	for i := range routines {
		if routines[i].IsActive {
			return &routines[i], nil
		}
	}
	return &routines[0], nil
}
