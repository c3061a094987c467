// Package model 定义排班生成引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee 员工（排班输入，标识与配置字段只读）
type Employee struct {
	BaseModel
	Name   string `json:"name" db:"name"`
	Code   string `json:"code" db:"code"`
	Status string `json:"status" db:"status"` // active/inactive/leave

	// 排班相关配置
	MaxHoursPerWeek int            `json:"max_hours_per_week" db:"max_hours_per_week"`
	MinHoursPerWeek int            `json:"min_hours_per_week,omitempty" db:"min_hours_per_week"` // 0 表示未设置
	Positions       []string       `json:"positions" db:"positions"`                             // 可胜任岗位
	PreferredDays   []time.Weekday `json:"preferred_days,omitempty" db:"preferred_days"`         // 偏好工作日
	HourlyRate      float64        `json:"hourly_rate,omitempty" db:"hourly_rate"`

	// 历史偏好满足率（0-1，越低越优先，作为公平性信号）
	FulfillmentRate float64 `json:"fulfillment_rate,omitempty" db:"fulfillment_rate"`
}

// IsActive 检查员工是否在职
func (e *Employee) IsActive() bool {
	return e.Status == "active"
}

// HasPosition 检查员工是否可胜任某岗位
func (e *Employee) HasPosition(position string) bool {
	for _, p := range e.Positions {
		if p == position {
			return true
		}
	}
	return false
}

// PrefersWeekday 检查某星期几是否在员工偏好工作日内
func (e *Employee) PrefersWeekday(day time.Weekday) bool {
	for _, d := range e.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

// WorkState 员工单次生成运行内的可变工作状态。
// 每次生成调用持有各员工状态的独立副本，周界重置后归零，
// 绝不在并发运行之间共享。
type WorkState struct {
	WeeklyWorkHours  float64 `json:"weekly_work_hours"`
	WeeklyShiftCount int     `json:"weekly_shift_count"`
	LastAssignedDate string  `json:"last_assigned_date,omitempty"` // YYYY-MM-DD，空表示本次运行尚未分配
}

// ResetWeek 周界重置累计量（不清除 LastAssignedDate，连续天数跨周延续）
func (s *WorkState) ResetWeek() {
	s.WeeklyWorkHours = 0
	s.WeeklyShiftCount = 0
}

// EmployeeAvailability 员工自报的单日可用时间窗
type EmployeeAvailability struct {
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	Date       time.Time `json:"date" db:"date"` // 日历日（忽略时刻比较）
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
	Priority   int       `json:"priority" db:"priority"` // 1-5，5 为最强偏好
	Note       string    `json:"note,omitempty" db:"note"`
}

// Window 返回可用时间窗
func (a *EmployeeAvailability) Window() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}
