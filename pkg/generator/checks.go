// Package generator 提供自动排班生成引擎
package generator

import (
	"time"

	"github.com/shiftgen/shiftgen/pkg/model"
)

// 四个硬约束判定，各自独立、输入确定则结果确定。
// 它们不合并为单一的通过/不通过：每个失败在评分器中映射为
// 不同的大额负分哨兵，便于单独检验排除原因。

// MatchesPosition 检查员工是否可胜任候选岗位
func MatchesPosition(emp *model.Employee, position string) bool {
	return emp.HasPosition(position)
}

// WithinWeeklyCeiling 检查加上候选班次后是否仍在周工时上限内。
// 必须针对运行中的实时累计量评估，而非静态快照——同一个
// 生成回合内会连续分配多个时段。
func WithinWeeklyCeiling(weeklyWorkHours float64, maxHoursPerWeek int, shiftHours float64) bool {
	return weeklyWorkHours+shiftHours <= float64(maxHoursPerWeek)
}

// UnderConsecutiveLimit 检查候选日期是否会超出最大连续工作天数。
// 从候选日期向前逐日回溯，统计员工已有排班的连续天数（以
// lastAssignedDate 为起点）；连续天数达到上限即拒绝。
func UnderConsecutiveLimit(lastAssignedDate string, assignedDates map[string]bool, date time.Time, maxConsecutiveDays int) bool {
	if lastAssignedDate == "" {
		return true
	}

	run := 0
	cursor := date.AddDate(0, 0, -1)
	for assignedDates[cursor.Format(model.DateLayout)] {
		run++
		if run >= maxConsecutiveDays {
			return false
		}
		cursor = cursor.AddDate(0, 0, -1)
	}
	return true
}

// HasMinimumRest 检查最近一个已生成班次的结束时间与候选开始
// 时间之间的间隔是否满足最小休息小时数。本次运行尚无班次时
// 恒为真。
func HasMinimumRest(lastShiftEnd time.Time, candidateStart time.Time, minRestHours int) bool {
	if lastShiftEnd.IsZero() {
		return true
	}
	return candidateStart.Sub(lastShiftEnd).Hours() >= float64(minRestHours)
}
