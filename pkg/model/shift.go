// Package model 定义排班生成引擎的核心数据模型
package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// GenericPosition 未给出岗位拆分时使用的默认岗位
const GenericPosition = "floor"

// 策略默认值
const (
	DefaultMaxConsecutiveDays = 5  // 默认最大连续工作天数
	DefaultMinRestHours       = 10 // 默认班次间最小休息小时数
)

// BusinessHour 营业时间（每个营业的星期几一条记录，缺失表示当日不营业）
type BusinessHour struct {
	Weekday   time.Weekday `json:"weekday" db:"weekday"`       // 0-6（周日为 0）
	OpenTime  string       `json:"open_time" db:"open_time"`   // HH:MM
	CloseTime string       `json:"close_time" db:"close_time"` // HH:MM
}

// WindowOn 返回营业时间落在指定日期上的时间范围
func (b *BusinessHour) WindowOn(date time.Time) (TimeRange, error) {
	open, err := AtClock(date, b.OpenTime)
	if err != nil {
		return TimeRange{}, err
	}
	closed, err := AtClock(date, b.CloseTime)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: open, End: closed}, nil
}

// SlotsPerDay 每日营业时间固定切分的时段数（早/午/晚）
const SlotsPerDay = 3

// SplitWindow 将营业窗口切分为三个连续等长时段。
// 总营业小时数整除以 3，余数小时并入晚段。固定的三等分
// 是设计决定，不可配置。
func SplitWindow(window TimeRange) [SlotsPerDay]TimeRange {
	totalHours := int(window.Duration().Hours())
	slotHours := totalHours / SlotsPerDay

	morningEnd := window.Start.Add(time.Duration(slotHours) * time.Hour)
	afternoonEnd := morningEnd.Add(time.Duration(slotHours) * time.Hour)

	return [SlotsPerDay]TimeRange{
		{Start: window.Start, End: morningEnd},
		{Start: morningEnd, End: afternoonEnd},
		{Start: afternoonEnd, End: window.End},
	}
}

// StaffRequirement 人员需求（按星期几和时段）
type StaffRequirement struct {
	Weekday   time.Weekday   `json:"weekday" db:"weekday"`
	Slot      TimeSlot       `json:"slot" db:"slot"`
	Count     int            `json:"count" db:"count"`                   // 总人数
	Positions map[string]int `json:"positions,omitempty" db:"positions"` // 岗位拆分（给出时为权威目标）
}

// PositionTargets 返回岗位到目标人数的列表（岗位名升序，保证确定性）。
// 未给出岗位拆分时，总人数作为通用岗位的单一需求。
func (r *StaffRequirement) PositionTargets() []PositionTarget {
	if len(r.Positions) == 0 {
		return []PositionTarget{{Position: GenericPosition, Count: r.Count}}
	}

	names := make([]string, 0, len(r.Positions))
	for name := range r.Positions {
		names = append(names, name)
	}
	sort.Strings(names)

	targets := make([]PositionTarget, 0, len(names))
	for _, name := range names {
		targets = append(targets, PositionTarget{Position: name, Count: r.Positions[name]})
	}
	return targets
}

// PositionTarget 单个岗位的人数目标
type PositionTarget struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// ShiftEvent 生成的排班事件（发出后不可变）
type ShiftEvent struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	Position   string    `json:"position" db:"position"`
}

// Hours 返回班次时长（小时）
func (e *ShiftEvent) Hours() float64 {
	return e.EndTime.Sub(e.StartTime).Hours()
}

// Date 返回班次所在日期（YYYY-MM-DD）
func (e *ShiftEvent) Date() string {
	return e.StartTime.Format(DateLayout)
}

// ShiftGenerationConfig 排班生成输入
type ShiftGenerationConfig struct {
	StartDate      string                 `json:"start_date"` // YYYY-MM-DD，含
	EndDate        string                 `json:"end_date"`   // YYYY-MM-DD，含
	BusinessHours  []BusinessHour         `json:"business_hours"`
	Employees      []*Employee            `json:"employees"`
	Requirements   []StaffRequirement     `json:"requirements"`
	Availabilities []EmployeeAvailability `json:"availabilities,omitempty"`

	// 策略旋钮
	MaxConsecutiveDays         int  `json:"max_consecutive_days"`         // 默认 5
	MinRestHours               int  `json:"min_rest_hours"`               // 默认 10
	PrioritizeEvenDistribution bool `json:"prioritize_even_distribution"` // 均衡分配
	EnforcePositionMatch       bool `json:"enforce_position_match"`       // 岗位技能匹配
}

// ApplyDefaults 为未设置的策略旋钮填入默认值
func (c *ShiftGenerationConfig) ApplyDefaults() {
	if c.MaxConsecutiveDays <= 0 {
		c.MaxConsecutiveDays = DefaultMaxConsecutiveDays
	}
	if c.MinRestHours <= 0 {
		c.MinRestHours = DefaultMinRestHours
	}
}

// BusinessHourFor 返回某星期几的营业时间，不营业时返回 nil
func (c *ShiftGenerationConfig) BusinessHourFor(day time.Weekday) *BusinessHour {
	for i := range c.BusinessHours {
		if c.BusinessHours[i].Weekday == day {
			return &c.BusinessHours[i]
		}
	}
	return nil
}

// RequirementFor 返回某星期几某时段的人员需求，无需求时返回 nil
func (c *ShiftGenerationConfig) RequirementFor(day time.Weekday, slot TimeSlot) *StaffRequirement {
	for i := range c.Requirements {
		if c.Requirements[i].Weekday == day && c.Requirements[i].Slot == slot {
			return &c.Requirements[i]
		}
	}
	return nil
}
