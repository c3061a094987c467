// Package validator 提供排班结果验证功能。
// 在引擎产出之后复查排班事件列表，报告各类冲突；
// 引擎本身从不调用它。
package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/generator"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// ConflictType 冲突类型
type ConflictType string

const (
	ConflictOverlap      ConflictType = "overlap"      // 时间重叠
	ConflictRestTime     ConflictType = "rest_time"    // 休息时间不足
	ConflictMaxHours     ConflictType = "max_hours"    // 超过周工时上限
	ConflictConsecutive  ConflictType = "consecutive"  // 连续天数过多
	ConflictPosition     ConflictType = "position"     // 岗位不匹配
	ConflictAvailability ConflictType = "availability" // 不在可用时间内
)

// Conflict 冲突信息
type Conflict struct {
	Type       ConflictType `json:"type"`
	Severity   string       `json:"severity"` // error/warning
	EmployeeID uuid.UUID    `json:"employee_id"`
	Date       string       `json:"date"`
	Message    string       `json:"message"`
}

// DetectorConfig 检测器配置
type DetectorConfig struct {
	MinRestHours       int  // 最小休息时间（小时）
	MaxConsecutiveDays int  // 最大连续工作天数
	CheckPositions     bool // 是否检查岗位匹配
	CheckAvailability  bool // 是否对照可用性记录

	Availabilities []model.EmployeeAvailability // 可用性记录（检查可用性时使用）
}

// DefaultDetectorConfig 返回默认配置
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		MinRestHours:       model.DefaultMinRestHours,
		MaxConsecutiveDays: model.DefaultMaxConsecutiveDays,
		CheckPositions:     true,
		CheckAvailability:  true,
	}
}

// ConflictDetector 冲突检测器
type ConflictDetector struct {
	config *DetectorConfig
}

// NewConflictDetector 创建冲突检测器
func NewConflictDetector(config *DetectorConfig) *ConflictDetector {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &ConflictDetector{config: config}
}

// DetectAll 检测排班结果中的所有冲突
func (d *ConflictDetector) DetectAll(events []*model.ShiftEvent, employees map[uuid.UUID]*model.Employee) []Conflict {
	var conflicts []Conflict

	byEmployee := groupByEmployee(events)

	empIDs := make([]uuid.UUID, 0, len(byEmployee))
	for empID := range byEmployee {
		empIDs = append(empIDs, empID)
	}
	sort.Slice(empIDs, func(i, j int) bool {
		return empIDs[i].String() < empIDs[j].String()
	})

	for _, empID := range empIDs {
		emp := employees[empID]
		if emp == nil {
			continue
		}

		empEvents := byEmployee[empID]
		sorted := make([]*model.ShiftEvent, len(empEvents))
		copy(sorted, empEvents)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		})

		conflicts = append(conflicts, d.detectOverlapAndRest(emp, sorted)...)
		conflicts = append(conflicts, d.detectWeeklyHours(emp, sorted)...)
		conflicts = append(conflicts, d.detectConsecutive(emp, sorted)...)

		if d.config.CheckPositions {
			conflicts = append(conflicts, d.detectPositions(emp, sorted)...)
		}
		if d.config.CheckAvailability {
			conflicts = append(conflicts, d.detectAvailability(emp, sorted)...)
		}
	}

	return conflicts
}

// detectOverlapAndRest 检测时间重叠与休息不足
func (d *ConflictDetector) detectOverlapAndRest(emp *model.Employee, sorted []*model.ShiftEvent) []Conflict {
	var conflicts []Conflict

	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]

		if next.StartTime.Before(cur.EndTime) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictOverlap,
				Severity:   "error",
				EmployeeID: emp.ID,
				Date:       next.Date(),
				Message:    fmt.Sprintf("员工 %s 的班次时间重叠", emp.Name),
			})
			continue
		}

		rest := next.StartTime.Sub(cur.EndTime).Hours()
		if rest < float64(d.config.MinRestHours) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictRestTime,
				Severity:   "error",
				EmployeeID: emp.ID,
				Date:       next.Date(),
				Message: fmt.Sprintf("员工 %s 班次间隔仅 %.1f 小时，少于要求的 %d 小时",
					emp.Name, rest, d.config.MinRestHours),
			})
		}
	}

	return conflicts
}

// detectWeeklyHours 检测周工时超限（周以周日开始）
func (d *ConflictDetector) detectWeeklyHours(emp *model.Employee, sorted []*model.ShiftEvent) []Conflict {
	var conflicts []Conflict

	hoursByWeek := make(map[string]float64)
	for _, e := range sorted {
		hoursByWeek[weekStart(e.StartTime)] += e.Hours()
	}

	weeks := make([]string, 0, len(hoursByWeek))
	for w := range hoursByWeek {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	for _, w := range weeks {
		hours := hoursByWeek[w]
		if hours > float64(emp.MaxHoursPerWeek) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictMaxHours,
				Severity:   "error",
				EmployeeID: emp.ID,
				Date:       w,
				Message: fmt.Sprintf("员工 %s 在周 %s 工作 %.1f 小时，超过上限 %d 小时",
					emp.Name, w, hours, emp.MaxHoursPerWeek),
			})
		}
	}

	return conflicts
}

// detectConsecutive 检测连续工作天数超限
func (d *ConflictDetector) detectConsecutive(emp *model.Employee, sorted []*model.ShiftEvent) []Conflict {
	var conflicts []Conflict

	dateSet := make(map[string]bool)
	for _, e := range sorted {
		dateSet[e.Date()] = true
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	run := 1
	for i := 1; i < len(dates); i++ {
		if isNextDay(dates[i-1], dates[i]) {
			run++
			if run == d.config.MaxConsecutiveDays+1 {
				conflicts = append(conflicts, Conflict{
					Type:       ConflictConsecutive,
					Severity:   "error",
					EmployeeID: emp.ID,
					Date:       dates[i],
					Message: fmt.Sprintf("员工 %s 连续工作超过 %d 天",
						emp.Name, d.config.MaxConsecutiveDays),
				})
			}
		} else {
			run = 1
		}
	}

	return conflicts
}

// detectPositions 检测岗位匹配
func (d *ConflictDetector) detectPositions(emp *model.Employee, sorted []*model.ShiftEvent) []Conflict {
	var conflicts []Conflict

	for _, e := range sorted {
		if !emp.HasPosition(e.Position) {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictPosition,
				Severity:   "error",
				EmployeeID: emp.ID,
				Date:       e.Date(),
				Message:    fmt.Sprintf("员工 %s 不可胜任岗位 %s", emp.Name, e.Position),
			})
		}
	}

	return conflicts
}

// detectAvailability 对照可用性记录检测（与引擎同一套解析语义）
func (d *ConflictDetector) detectAvailability(emp *model.Employee, sorted []*model.ShiftEvent) []Conflict {
	var conflicts []Conflict

	for _, e := range sorted {
		ok, _ := generator.ResolveAvailability(emp.ID, e.StartTime, e.StartTime, e.EndTime, d.config.Availabilities)
		if !ok {
			conflicts = append(conflicts, Conflict{
				Type:       ConflictAvailability,
				Severity:   "warning",
				EmployeeID: emp.ID,
				Date:       e.Date(),
				Message:    fmt.Sprintf("员工 %s 的班次不在其申报的可用时间内", emp.Name),
			})
		}
	}

	return conflicts
}

// groupByEmployee 按员工分组
func groupByEmployee(events []*model.ShiftEvent) map[uuid.UUID][]*model.ShiftEvent {
	grouped := make(map[uuid.UUID][]*model.ShiftEvent)
	for _, e := range events {
		grouped[e.EmployeeID] = append(grouped[e.EmployeeID], e)
	}
	return grouped
}

// weekStart 返回日期所在周的起始日（周日）
func weekStart(t time.Time) string {
	return t.AddDate(0, 0, -int(t.Weekday())).Format(model.DateLayout)
}

// isNextDay 检查 date2 是否是 date1 的次日
func isNextDay(date1, date2 string) bool {
	t1, err1 := model.ParseDate(date1)
	t2, err2 := model.ParseDate(date2)
	if err1 != nil || err2 != nil {
		return false
	}
	return t2.Sub(t1) == 24*time.Hour
}
