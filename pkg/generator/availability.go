// Package generator 提供自动排班生成引擎
package generator

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// ResolveAvailability 判定员工在候选时间窗内是否可用，以及偏好优先级。
//
// 过滤出属于该员工且与候选日期同一日历日的可用性记录：
//   - 无任何记录时返回 (true, 0)，即"默认开放"策略——未提交可用性
//     的员工默认全时段可用、偏好权重为零；
//   - 否则返回第一条完全包含候选窗（边界含）的记录的优先级；
//   - 没有记录能包含候选窗时返回 (false, 0)。
//
// 纯函数，无副作用。
func ResolveAvailability(
	employeeID uuid.UUID,
	date time.Time,
	windowStart, windowEnd time.Time,
	availabilities []model.EmployeeAvailability,
) (bool, int) {
	window := model.TimeRange{Start: windowStart, End: windowEnd}

	matched := false
	for i := range availabilities {
		a := &availabilities[i]
		if a.EmployeeID != employeeID || !model.SameDate(a.Date, date) {
			continue
		}
		matched = true

		if a.Window().ContainsRange(window) {
			return true, a.Priority
		}
	}

	if !matched {
		return true, 0
	}
	return false, 0
}
