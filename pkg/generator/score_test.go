package generator

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// 评分测试的公共场景：周一 09:00-13:00 早段，通用岗位
func scoreFixture() (time.Time, model.TimeRange) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // 周一
	slot := model.TimeRange{
		Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC),
	}
	return date, slot
}

func newTestState(emp *model.Employee) *empState {
	return &empState{
		emp:           emp,
		assignedDates: make(map[string]bool),
	}
}

func baseEmployee() *model.Employee {
	return &model.Employee{
		BaseModel:       model.BaseModel{ID: uuid.New()},
		Name:            "测试员工",
		Status:          "active",
		MaxHoursPerWeek: 40,
	}
}

func baseConfig() *model.ShiftGenerationConfig {
	cfg := &model.ShiftGenerationConfig{}
	cfg.ApplyDefaults()
	return cfg
}

func TestScoreCandidate_HardExclusions(t *testing.T) {
	date, slot := scoreFixture()

	t.Run("不可用返回-1000", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		cfg.Availabilities = []model.EmployeeAvailability{{
			EmployeeID: emp.ID,
			Date:       date,
			StartTime:  time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
			Priority:   5,
		}}

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != ScoreExcludeUnavailable {
			t.Errorf("score = %.0f, want %.0f", got, ScoreExcludeUnavailable)
		}
	})

	t.Run("岗位不匹配返回-800", func(t *testing.T) {
		emp := baseEmployee()
		emp.Positions = []string{"cashier"}
		cfg := baseConfig()
		cfg.EnforcePositionMatch = true

		if got := scoreCandidate(newTestState(emp), date, slot, "cook", cfg); got != ScoreExcludeSkillMismatch {
			t.Errorf("score = %.0f, want %.0f", got, ScoreExcludeSkillMismatch)
		}
	})

	t.Run("未启用匹配时岗位不阻断", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()

		if got := scoreCandidate(newTestState(emp), date, slot, "cook", cfg); got <= EligibilityThreshold {
			t.Errorf("未启用岗位匹配时不应排除, score = %.0f", got)
		}
	})

	t.Run("周工时上限返回-500", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		st := newTestState(emp)
		st.work.WeeklyWorkHours = 38 // +4 超过40

		if got := scoreCandidate(st, date, slot, model.GenericPosition, cfg); got != ScoreExcludeWeeklyCeiling {
			t.Errorf("score = %.0f, want %.0f", got, ScoreExcludeWeeklyCeiling)
		}
	})

	t.Run("连续天数达上限返回-300", func(t *testing.T) {
		emp := baseEmployee()
		emp.MaxHoursPerWeek = 100 // 不触发工时上限
		cfg := baseConfig()
		st := newTestState(emp)
		for i := 1; i <= cfg.MaxConsecutiveDays; i++ {
			st.assignedDates[date.AddDate(0, 0, -i).Format(model.DateLayout)] = true
		}
		st.work.LastAssignedDate = date.AddDate(0, 0, -1).Format(model.DateLayout)

		if got := scoreCandidate(st, date, slot, model.GenericPosition, cfg); got != ScoreExcludeConsecutive {
			t.Errorf("score = %.0f, want %.0f", got, ScoreExcludeConsecutive)
		}
	})

	t.Run("休息不足返回-200", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		st := newTestState(emp)
		st.lastShiftEnd = time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC) // 7小时前
		st.work.LastAssignedDate = "2025-03-09"
		st.assignedDates["2025-03-09"] = true

		if got := scoreCandidate(st, date, slot, model.GenericPosition, cfg); got != ScoreExcludeRest {
			t.Errorf("score = %.0f, want %.0f", got, ScoreExcludeRest)
		}
	})
}

func TestScoreCandidate_SoftTerms(t *testing.T) {
	date, slot := scoreFixture()

	t.Run("零状态员工的基线得分", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()

		// priority=0；剩余40小时，压力 = 10-40/4 = 0；无近期分配
		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 0 {
			t.Errorf("score = %.1f, want 0", got)
		}
	})

	t.Run("可用性优先级每级加20", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		cfg.Availabilities = []model.EmployeeAvailability{{
			EmployeeID: emp.ID,
			Date:       date,
			StartTime:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
			Priority:   5,
		}}

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 100 {
			t.Errorf("score = %.1f, want 100", got)
		}
	})

	t.Run("容量压力随剩余工时减少", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		st := newTestState(emp)
		st.work.WeeklyWorkHours = 20 // 剩余20，压力 = 10-5 = 5

		if got := scoreCandidate(st, date, slot, model.GenericPosition, cfg); got != -5 {
			t.Errorf("score = %.1f, want -5", got)
		}
	})

	t.Run("前一日工作过轻度减分", func(t *testing.T) {
		emp := baseEmployee()
		cfg := baseConfig()
		st := newTestState(emp)
		prev := date.AddDate(0, 0, -1)
		st.work.LastAssignedDate = prev.Format(model.DateLayout)
		st.assignedDates[st.work.LastAssignedDate] = true
		st.lastShiftEnd = time.Date(2025, 3, 9, 13, 0, 0, 0, time.UTC)

		if got := scoreCandidate(st, date, slot, model.GenericPosition, cfg); got != -2 {
			t.Errorf("score = %.1f, want -2", got)
		}
	})

	t.Run("均衡模式下满足率低者加分", func(t *testing.T) {
		emp := baseEmployee()
		emp.FulfillmentRate = 0.2 // round(0.8*15) = 12
		cfg := baseConfig()
		cfg.PrioritizeEvenDistribution = true

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 12 {
			t.Errorf("score = %.1f, want 12", got)
		}
	})

	t.Run("非均衡模式忽略满足率", func(t *testing.T) {
		emp := baseEmployee()
		emp.FulfillmentRate = 0.2
		cfg := baseConfig()

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 0 {
			t.Errorf("score = %.1f, want 0", got)
		}
	})

	t.Run("未达最低周工时加10", func(t *testing.T) {
		emp := baseEmployee()
		emp.MinHoursPerWeek = 20
		cfg := baseConfig()

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 10 {
			t.Errorf("score = %.1f, want 10", got)
		}
	})

	t.Run("偏好工作日加10", func(t *testing.T) {
		emp := baseEmployee()
		emp.PreferredDays = []time.Weekday{time.Monday}
		cfg := baseConfig()

		if got := scoreCandidate(newTestState(emp), date, slot, model.GenericPosition, cfg); got != 10 {
			t.Errorf("score = %.1f, want 10", got)
		}
	})
}
