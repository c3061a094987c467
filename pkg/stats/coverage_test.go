package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

func createCoverageConfig() *model.ShiftGenerationConfig {
	return &model.ShiftGenerationConfig{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
		BusinessHours: []model.BusinessHour{
			{Weekday: time.Monday, OpenTime: "09:00", CloseTime: "21:00"},
		},
		Requirements: []model.StaffRequirement{
			{Weekday: time.Monday, Slot: model.SlotMorning, Count: 2},
			{Weekday: time.Monday, Slot: model.SlotAfternoon, Count: 1},
		},
	}
}

func createEvent(position string, startHour, endHour int) *model.ShiftEvent {
	return &model.ShiftEvent{
		ID:         uuid.New(),
		StartTime:  time.Date(2025, 3, 10, startHour, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 3, 10, endHour, 0, 0, 0, time.UTC),
		EmployeeID: uuid.New(),
		Position:   position,
	}
}

func TestCoverageAnalyzer_Analyze(t *testing.T) {
	cfg := createCoverageConfig()

	t.Run("部分满足", func(t *testing.T) {
		// 早段需2人到1人，午段需1人无人
		events := []*model.ShiftEvent{
			createEvent(model.GenericPosition, 9, 13),
		}

		report := NewCoverageAnalyzer().Analyze(cfg, events)

		if report.TotalRequired != 3 {
			t.Errorf("TotalRequired = %d, want 3", report.TotalRequired)
		}
		if report.TotalAssigned != 1 {
			t.Errorf("TotalAssigned = %d, want 1", report.TotalAssigned)
		}
		if len(report.Underfilled) != 2 {
			t.Errorf("Underfilled = %d, want 2", len(report.Underfilled))
		}

		wantRate := 100.0 / 3
		if diff := report.FillRate - wantRate; diff > 0.01 || diff < -0.01 {
			t.Errorf("FillRate = %.2f, want %.2f", report.FillRate, wantRate)
		}
	})

	t.Run("完全满足", func(t *testing.T) {
		events := []*model.ShiftEvent{
			createEvent(model.GenericPosition, 9, 13),
			createEvent(model.GenericPosition, 9, 13),
			createEvent(model.GenericPosition, 13, 17),
		}

		report := NewCoverageAnalyzer().Analyze(cfg, events)

		if report.FillRate != 100 {
			t.Errorf("FillRate = %.2f, want 100", report.FillRate)
		}
		if len(report.Underfilled) != 0 {
			t.Errorf("Underfilled = %d, want 0", len(report.Underfilled))
		}
	})

	t.Run("岗位不匹配的事件不计入", func(t *testing.T) {
		events := []*model.ShiftEvent{
			createEvent("cook", 9, 13), // 需求是通用岗位
		}

		report := NewCoverageAnalyzer().Analyze(cfg, events)
		if report.TotalAssigned != 0 {
			t.Errorf("TotalAssigned = %d, want 0", report.TotalAssigned)
		}
	})

	t.Run("无需求时满足率为100", func(t *testing.T) {
		empty := &model.ShiftGenerationConfig{StartDate: "2025-03-10", EndDate: "2025-03-10"}
		report := NewCoverageAnalyzer().Analyze(empty, nil)
		if report.FillRate != 100 {
			t.Errorf("FillRate = %.2f, want 100", report.FillRate)
		}
	})
}
