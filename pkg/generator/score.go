// Package generator 提供自动排班生成引擎
package generator

import (
	"math"
	"time"

	"github.com/shiftgen/shiftgen/pkg/model"
)

// 评分哨兵：硬约束失败编码为大额负分而非布尔排除，
// 各失败原因对应不同的哨兵值，保持可单独检验。
const (
	// ScoreExcludeUnavailable 可用性不满足
	ScoreExcludeUnavailable float64 = -1000
	// ScoreExcludeSkillMismatch 岗位技能不匹配（启用匹配时）
	ScoreExcludeSkillMismatch float64 = -800
	// ScoreExcludeWeeklyCeiling 周工时上限不足以容纳候选班次
	ScoreExcludeWeeklyCeiling float64 = -500
	// ScoreExcludeConsecutive 连续工作天数达到上限
	ScoreExcludeConsecutive float64 = -300
	// ScoreExcludeRest 班次间休息不足
	ScoreExcludeRest float64 = -200

	// EligibilityThreshold 结构性排除阈值：得分小于等于该值的
	// 候选人一律不参与分配。阈值取值不可更改，否则会悄然改变
	// 临界候选人的取舍。
	EligibilityThreshold float64 = -100
)

// 软偏好权重
const (
	priorityWeight        = 20 // 可用性优先级每级加分
	sameDayPenalty        = 5  // 同日已有分配
	previousDayPenalty    = 2  // 前一日刚工作过
	fairnessBonusScale    = 15 // 满足率公平加分系数
	minHoursBonus         = 10 // 未达最低周工时加分
	preferredWeekdayBonus = 10 // 偏好工作日加分
)

// scoreCandidate 计算员工对候选 (日期, 时段, 岗位) 的期望得分。
// 每个候选每个时段重新计算，评分阶段无任何状态突变。
func scoreCandidate(
	st *empState,
	date time.Time,
	slot model.TimeRange,
	position string,
	cfg *model.ShiftGenerationConfig,
) float64 {
	emp := st.emp

	available, priority := ResolveAvailability(emp.ID, date, slot.Start, slot.End, cfg.Availabilities)
	if !available {
		return ScoreExcludeUnavailable
	}

	if cfg.EnforcePositionMatch && !MatchesPosition(emp, position) {
		return ScoreExcludeSkillMismatch
	}

	shiftHours := slot.Hours()
	if !WithinWeeklyCeiling(st.work.WeeklyWorkHours, emp.MaxHoursPerWeek, shiftHours) {
		return ScoreExcludeWeeklyCeiling
	}

	if !UnderConsecutiveLimit(st.work.LastAssignedDate, st.assignedDates, date, cfg.MaxConsecutiveDays) {
		return ScoreExcludeConsecutive
	}

	if !HasMinimumRest(st.lastShiftEnd, slot.Start, cfg.MinRestHours) {
		return ScoreExcludeRest
	}

	// 软偏好累计
	score := float64(priority * priorityWeight)

	// 容量压力：越接近周工时上限得分越低，促使负载分散
	remaining := float64(emp.MaxHoursPerWeek) - st.work.WeeklyWorkHours
	if pressure := 10 - remaining/4; pressure > 0 {
		score -= pressure
	}

	// 近期分配惩罚：同日已有分配强烈不鼓励（但不硬排除），
	// 前一日刚工作过轻度减分
	dateStr := date.Format(model.DateLayout)
	prevStr := date.AddDate(0, 0, -1).Format(model.DateLayout)
	switch st.work.LastAssignedDate {
	case dateStr:
		score -= sameDayPenalty
	case prevStr:
		score -= previousDayPenalty
	}

	// 公平加分：历史偏好满足率越低的员工越优先
	if cfg.PrioritizeEvenDistribution {
		score += math.Round((1 - emp.FulfillmentRate) * fairnessBonusScale)
	}

	// 最低周工时加分
	if emp.MinHoursPerWeek > 0 && st.work.WeeklyWorkHours < float64(emp.MinHoursPerWeek) {
		score += minHoursBonus
	}

	// 偏好工作日加分
	if emp.PrefersWeekday(date.Weekday()) {
		score += preferredWeekdayBonus
	}

	return score
}
