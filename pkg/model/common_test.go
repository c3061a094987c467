package model

import (
	"testing"
	"time"
)

func TestTimeRangeContainsRange(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
	}
	outer := TimeRange{Start: at(9), End: at(17)}

	tests := []struct {
		name  string
		inner TimeRange
		want  bool
	}{
		{"完全在内部", TimeRange{Start: at(10), End: at(12)}, true},
		{"边界完全重合", TimeRange{Start: at(9), End: at(17)}, true},
		{"起点早于外窗", TimeRange{Start: at(8), End: at(12)}, false},
		{"终点晚于外窗", TimeRange{Start: at(10), End: at(18)}, false},
		{"完全在外部", TimeRange{Start: at(18), End: at(20)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.ContainsRange(tt.inner); got != tt.want {
				t.Errorf("ContainsRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	c := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	if !SameDate(a, b) {
		t.Error("同一日历日不同时刻应判定为同日")
	}
	if SameDate(a, c) {
		t.Error("不同日历日应判定为不同日")
	}
}

func TestAtClock(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := AtClock(date, "09:30")
	if err != nil {
		t.Fatalf("AtClock() error = %v", err)
	}
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtClock() = %v, want %v", got, want)
	}

	if _, err := AtClock(date, "9:3"); err == nil {
		t.Error("非法时刻格式应返回错误")
	}
}

func TestWorkStateResetWeek(t *testing.T) {
	s := &WorkState{
		WeeklyWorkHours:  32,
		WeeklyShiftCount: 4,
		LastAssignedDate: "2025-03-08",
	}
	s.ResetWeek()

	if s.WeeklyWorkHours != 0 || s.WeeklyShiftCount != 0 {
		t.Errorf("周累计量未清零: hours=%.1f, count=%d", s.WeeklyWorkHours, s.WeeklyShiftCount)
	}
	if s.LastAssignedDate != "2025-03-08" {
		t.Error("LastAssignedDate 不应被周界重置清除，连续天数跨周延续")
	}
}
