package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"nesttask/backend/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSlots = errors.New("该课程表无可导出的排课")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将选中课程表的一周排课导出为 iCalendar (RFC 5545)，
//     每个 Slot 一个 VEVENT，FREQ=WEEKLY 周重复。
//   - 事件时间取对应星期的下一次出现（含当天）；学期起止不在
//     本层数据内，由订阅方的日历软件自行截断。
//   - 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response。
type ExportService interface {
	// ExportRoutineICS 导出课程表为 ICS，返回内容与建议文件名
	ExportRoutineICS(ctx context.Context, routineID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	schedule ScheduleService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(schedule ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{schedule: schedule, logger: logger}
}

func (s *exportService) ExportRoutineICS(ctx context.Context, routineID string) (*bytes.Buffer, string, error) {
	routine, enriched, err := s.schedule.EnrichRoutine(ctx, routineID)
	if err != nil {
		return nil, "", err
	}
	if len(enriched) == 0 {
		return nil, "", ErrExportNoSlots
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//NestTask//Routine Export//EN")

	now := time.Now()
	for _, slot := range enriched {
		start, end, err := nextOccurrence(now, &slot.Slot)
		if err != nil {
			// 入库前已校验，理论不可达
			s.logger.Warn("跳过无法定位时间的 slot",
				zap.String("slot_id", slot.SlotID),
				zap.Error(err),
			)
			continue
		}

		evt := cal.AddEvent(slot.SlotID + "@nesttask")
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(fmt.Sprintf("%s (%s)", slot.DisplayCourseName, slot.DisplayCourseCode))
		evt.SetLocation(slot.DisplayRoom)
		evt.SetDescription("Teacher: " + slot.DisplayTeacherName)
		evt.AddRrule("FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s.ics", sanitizeFilename(routine.Name))

	s.logger.Info("课程表导出完成",
		zap.String("routine_id", routine.RoutineID),
		zap.Int("slots", len(enriched)),
	)
	return buf, filename, nil
}

// ── 私有辅助方法 ──

// nextOccurrence 计算 slot 所在星期自 from 起的下一次出现（含当天）
func nextOccurrence(from time.Time, slot *model.Slot) (time.Time, time.Time, error) {
	startMin, err := model.ParseClock(slot.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := model.ParseClock(slot.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	day := from
	for i := 0; i < 7; i++ {
		if model.WeekdayOf(day) == slot.Day {
			break
		}
		day = day.AddDate(0, 0, 1)
	}

	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, from.Location())
	return base.Add(time.Duration(startMin) * time.Minute),
		base.Add(time.Duration(endMin) * time.Minute),
		nil
}

// sanitizeFilename 文件名保底处理：空白归一为下划线
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "routine"
	}
	return strings.Join(strings.Fields(name), "_")
}
