package generator

import (
	"testing"
	"time"

	"github.com/shiftgen/shiftgen/pkg/model"
)

func TestMatchesPosition(t *testing.T) {
	emp := &model.Employee{Positions: []string{"cook", "cashier"}}

	if !MatchesPosition(emp, "cook") {
		t.Error("具备的岗位应匹配")
	}
	if MatchesPosition(emp, "waiter") {
		t.Error("不具备的岗位不应匹配")
	}
	if MatchesPosition(&model.Employee{}, "cook") {
		t.Error("无岗位列表的员工不应匹配任何岗位")
	}
}

func TestWithinWeeklyCeiling(t *testing.T) {
	tests := []struct {
		name       string
		current    float64
		max        int
		shiftHours float64
		want       bool
	}{
		{"远低于上限", 10, 40, 4, true},
		{"恰好达到上限", 36, 40, 4, true},
		{"超出上限1小时", 37, 40, 4, false},
		{"零工时新班次仍需在上限内", 40, 40, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinWeeklyCeiling(tt.current, tt.max, tt.shiftHours); got != tt.want {
				t.Errorf("WithinWeeklyCeiling(%.1f, %d, %.1f) = %v, want %v",
					tt.current, tt.max, tt.shiftHours, got, tt.want)
			}
		})
	}
}

func TestUnderConsecutiveLimit(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	daysBefore := func(n int) string {
		return date.AddDate(0, 0, -n).Format(model.DateLayout)
	}

	t.Run("本次运行尚未分配时恒通过", func(t *testing.T) {
		if !UnderConsecutiveLimit("", nil, date, 5) {
			t.Error("无历史分配应通过")
		}
	})

	t.Run("连续天数未达上限", func(t *testing.T) {
		assigned := map[string]bool{
			daysBefore(1): true,
			daysBefore(2): true,
		}
		if !UnderConsecutiveLimit(daysBefore(1), assigned, date, 5) {
			t.Error("连续2天未达上限5应通过")
		}
	})

	t.Run("连续天数达到上限", func(t *testing.T) {
		assigned := make(map[string]bool)
		for i := 1; i <= 5; i++ {
			assigned[daysBefore(i)] = true
		}
		if UnderConsecutiveLimit(daysBefore(1), assigned, date, 5) {
			t.Error("已连续5天应拒绝第6天")
		}
	})

	t.Run("中间有休息日则重新计数", func(t *testing.T) {
		assigned := map[string]bool{
			daysBefore(1): true,
			daysBefore(2): true,
			// daysBefore(3) 休息
			daysBefore(4): true,
			daysBefore(5): true,
			daysBefore(6): true,
		}
		if !UnderConsecutiveLimit(daysBefore(1), assigned, date, 5) {
			t.Error("休息日打断连续计数，应通过")
		}
	})
}

func TestHasMinimumRest(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		lastShiftEnd   time.Time
		candidateStart time.Time
		minRest        int
		want           bool
	}{
		{"本次运行无班次恒通过", time.Time{}, at(10, 9), 10, true},
		{"休息充足", at(10, 21), at(11, 9), 10, true},
		{"恰好满足最小休息", at(10, 23), at(11, 9), 10, true},
		{"休息不足", at(10, 22), at(11, 6), 10, false},
		{"同日相邻时段无休息", at(10, 13), at(10, 13), 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMinimumRest(tt.lastShiftEnd, tt.candidateStart, tt.minRest); got != tt.want {
				t.Errorf("HasMinimumRest() = %v, want %v", got, tt.want)
			}
		})
	}
}
