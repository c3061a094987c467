package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

func createFairnessEmployee(name string) *model.Employee {
	return &model.Employee{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      name,
		Status:    "active",
	}
}

func createShift(empID uuid.UUID, day, startHour, hours int) *model.ShiftEvent {
	start := time.Date(2025, 3, day, startHour, 0, 0, 0, time.UTC)
	return &model.ShiftEvent{
		ID:         uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(time.Duration(hours) * time.Hour),
		EmployeeID: empID,
	}
}

func TestFairnessAnalyzer_Analyze(t *testing.T) {
	t.Run("完全均匀分布", func(t *testing.T) {
		emp1 := createFairnessEmployee("张三")
		emp2 := createFairnessEmployee("李四")

		events := []*model.ShiftEvent{
			createShift(emp1.ID, 10, 9, 8),
			createShift(emp2.ID, 11, 9, 8),
		}

		m := NewFairnessAnalyzer().Analyze(events, []*model.Employee{emp1, emp2})

		if m.WorkloadGini != 0 {
			t.Errorf("WorkloadGini = %.3f, want 0", m.WorkloadGini)
		}
		if m.OverallFairnessScore != 100 {
			t.Errorf("OverallFairnessScore = %.1f, want 100", m.OverallFairnessScore)
		}
		if m.AvgHoursPerEmployee != 8 {
			t.Errorf("AvgHoursPerEmployee = %.1f, want 8", m.AvgHoursPerEmployee)
		}
	})

	t.Run("未分配员工计入分布", func(t *testing.T) {
		emp1 := createFairnessEmployee("张三")
		emp2 := createFairnessEmployee("李四")

		events := []*model.ShiftEvent{
			createShift(emp1.ID, 10, 9, 8),
		}

		m := NewFairnessAnalyzer().Analyze(events, []*model.Employee{emp1, emp2})

		if len(m.EmployeeStats) != 2 {
			t.Fatalf("EmployeeStats = %d, want 2", len(m.EmployeeStats))
		}
		if m.WorkloadGini <= 0 {
			t.Error("一人独揽全部工时时基尼系数应大于0")
		}
		if m.MinHours != 0 {
			t.Errorf("MinHours = %.1f, want 0", m.MinHours)
		}
		if m.MaxHours != 8 {
			t.Errorf("MaxHours = %.1f, want 8", m.MaxHours)
		}
	})

	t.Run("周末班次统计", func(t *testing.T) {
		emp := createFairnessEmployee("张三")

		events := []*model.ShiftEvent{
			createShift(emp.ID, 15, 9, 4), // 2025-03-15 周六
			createShift(emp.ID, 17, 9, 4), // 2025-03-17 周一
		}

		m := NewFairnessAnalyzer().Analyze(events, []*model.Employee{emp})

		if m.EmployeeStats[0].WeekendShifts != 1 {
			t.Errorf("WeekendShifts = %d, want 1", m.EmployeeStats[0].WeekendShifts)
		}
		if m.EmployeeStats[0].ShiftCount != 2 {
			t.Errorf("ShiftCount = %d, want 2", m.EmployeeStats[0].ShiftCount)
		}
	})

	t.Run("员工列表为空", func(t *testing.T) {
		m := NewFairnessAnalyzer().Analyze(nil, nil)
		if m.OverallFairnessScore != 100 {
			t.Errorf("OverallFairnessScore = %.1f, want 100", m.OverallFairnessScore)
		}
	})

	t.Run("员工统计按工时降序", func(t *testing.T) {
		emp1 := createFairnessEmployee("张三")
		emp2 := createFairnessEmployee("李四")

		events := []*model.ShiftEvent{
			createShift(emp1.ID, 10, 9, 4),
			createShift(emp2.ID, 11, 9, 8),
		}

		m := NewFairnessAnalyzer().Analyze(events, []*model.Employee{emp1, emp2})

		if m.EmployeeStats[0].TotalHours < m.EmployeeStats[1].TotalHours {
			t.Error("员工统计应按工时降序排列")
		}
	})
}

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"空列表", nil, 0},
		{"全零", []float64{0, 0, 0}, 0},
		{"完全均匀", []float64{10, 10, 10}, 0},
		{"完全集中", []float64{0, 0, 30}, 2.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gini(tt.values)
			if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("gini(%v) = %.3f, want %.3f", tt.values, got, tt.want)
			}
		})
	}
}
