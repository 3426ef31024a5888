package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"nesttask/backend/internal/model"
)

func TestExportRoutineICS(t *testing.T) {
	store, scheduleSvc := newScheduleFixture(t)
	seedRoutines(t, store, model.Routine{
		RoutineID: "r1", Name: "Spring 2025 Section A", IsActive: true,
		Slots: []model.Slot{
			{SlotID: "s1", Day: model.Monday, StartTime: "09:00", EndTime: "10:30",
				CourseID: "c1", TeacherID: "t1", RoomNumber: "402"},
		},
	})
	seedReferences(t, store)
	svc := NewExportService(scheduleSvc, zap.NewNop())

	buf, filename, err := svc.ExportRoutineICS(context.Background(), "r1")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}

	if filename != "Spring_2025_Section_A.ics" {
		t.Errorf("文件名期望 Spring_2025_Section_A.ics, 实际 %s", filename)
	}

	out := buf.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"RRULE:FREQ=WEEKLY",
		"Data Structures (CS201)",
		"LOCATION:402",
		"s1@nesttask",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ICS 输出缺少 %q", want)
		}
	}
}

func TestExportRoutineICS_NoSlots(t *testing.T) {
	store, scheduleSvc := newScheduleFixture(t)
	seedRoutines(t, store, model.Routine{RoutineID: "r1", Name: "Empty", IsActive: true})
	svc := NewExportService(scheduleSvc, zap.NewNop())

	_, _, err := svc.ExportRoutineICS(context.Background(), "r1")
	if !errors.Is(err, ErrExportNoSlots) {
		t.Errorf("空课程表期望 ErrExportNoSlots, 实际 %v", err)
	}
}
