package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-03-03 周一, 2025-03-08 周六
	if got := WeekdayOf(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)); got != Monday {
		t.Errorf("期望 Monday, 实际 %s", got)
	}
	if got := WeekdayOf(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)); got != Saturday {
		t.Errorf("期望 Saturday, 实际 %s", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) 期望报错", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) 失败: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) 期望 %d, 实际 %d", c.in, c.want, got)
		}
	}
}

func TestSlotValidate(t *testing.T) {
	ok := Slot{SlotID: "s1", Day: Monday, StartTime: "09:00", EndTime: "10:30"}
	if err := ok.Validate(); err != nil {
		t.Errorf("合法 slot 校验失败: %v", err)
	}

	bad := Slot{SlotID: "s2", Day: Monday, StartTime: "10:30", EndTime: "09:00"}
	if err := bad.Validate(); err == nil {
		t.Error("start >= end 应校验失败")
	}

	badDay := Slot{SlotID: "s3", Day: "Someday", StartTime: "09:00", EndTime: "10:00"}
	if err := badDay.Validate(); err == nil {
		t.Error("非法星期应校验失败")
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"routine", "course", "teacher"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q) 失败: %v", s, err)
		}
	}
	if _, err := ParseKind("user"); err == nil {
		t.Error("未知类型应报错")
	}
}

func TestRecordID(t *testing.T) {
	id, err := RecordID(json.RawMessage(`{"id":"r1","name":"x"}`))
	if err != nil || id != "r1" {
		t.Errorf("期望 r1, 实际 %q (err=%v)", id, err)
	}
	if _, err := RecordID(json.RawMessage(`{"name":"x"}`)); err == nil {
		t.Error("缺少标识符应报错")
	}
}

func TestRecordSetDecode(t *testing.T) {
	set := &RecordSet{
		Kind: KindRoutine,
		Records: []json.RawMessage{
			json.RawMessage(`{"id":"r1","name":"Section A","is_active":true,"slots":[{"id":"s1","day":"Monday","start_time":"09:00","end_time":"10:30","course_id":"c1"}]}`),
		},
	}

	routines, err := set.Routines()
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if len(routines) != 1 || routines[0].RoutineID != "r1" {
		t.Fatalf("解码结果不正确: %+v", routines)
	}
	if len(routines[0].Slots) != 1 || routines[0].Slots[0].CourseID != "c1" {
		t.Errorf("slot 解码不正确: %+v", routines[0].Slots)
	}

	// kind 不匹配
	if _, err := set.Courses(); err == nil {
		t.Error("kind 不匹配应报错")
	}
}

func TestTeacherInitials(t *testing.T) {
	tr := Teacher{TeacherID: "t1", Name: "Abdur Rahman"}
	if got := tr.Initials(); got != "AR" {
		t.Errorf("缩写期望 AR, 实际 %s", got)
	}
}
