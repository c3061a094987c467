// Package stats 提供排班统计分析功能
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/shiftgen/shiftgen/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	WorkloadGini        float64 `json:"workload_gini"`          // 工时基尼系数 (0=完全公平, 1=完全不公平)
	WorkloadStdDev      float64 `json:"workload_std_dev"`       // 工时标准差
	AvgHoursPerEmployee float64 `json:"avg_hours_per_employee"` // 人均工时
	MaxHours            float64 `json:"max_hours"`              // 最大工时
	MinHours            float64 `json:"min_hours"`              // 最小工时

	EmployeeStats []EmployeeStat `json:"employee_stats"` // 员工级统计

	OverallFairnessScore float64 `json:"overall_fairness_score"` // 综合公平性评分 (0-100)
}

// EmployeeStat 员工统计
type EmployeeStat struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	TotalHours    float64 `json:"total_hours"`
	ShiftCount    int     `json:"shift_count"`
	WeekendShifts int     `json:"weekend_shifts"`
	Deviation     float64 `json:"deviation"` // 与平均工时的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct{}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze 分析生成结果的工作量分布公平性。
// 未被分配任何班次的员工也计入分布（工时为 0），否则均衡
// 策略的效果无从观测。
func (f *FairnessAnalyzer) Analyze(events []*model.ShiftEvent, employees []*model.Employee) *FairnessMetrics {
	if len(employees) == 0 {
		return &FairnessMetrics{OverallFairnessScore: 100}
	}

	statMap := make(map[string]*EmployeeStat, len(employees))
	for _, emp := range employees {
		statMap[emp.ID.String()] = &EmployeeStat{
			EmployeeID:   emp.ID.String(),
			EmployeeName: emp.Name,
		}
	}

	for _, e := range events {
		stat, ok := statMap[e.EmployeeID.String()]
		if !ok {
			continue
		}
		stat.TotalHours += e.Hours()
		stat.ShiftCount++
		if isWeekend(e.StartTime) {
			stat.WeekendShifts++
		}
	}

	hours := make([]float64, 0, len(statMap))
	stats := make([]EmployeeStat, 0, len(statMap))
	for _, emp := range employees {
		stat := statMap[emp.ID.String()]
		hours = append(hours, stat.TotalHours)
		stats = append(stats, *stat)
	}

	avg := mean(hours)
	stdDev := math.Sqrt(variance(hours, avg))
	maxHours, minHours := valueRange(hours)

	for i := range stats {
		if avg > 0 {
			stats[i].Deviation = (stats[i].TotalHours - avg) / avg * 100
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalHours > stats[j].TotalHours
	})

	workloadGini := gini(hours)

	return &FairnessMetrics{
		WorkloadGini:         workloadGini,
		WorkloadStdDev:       stdDev,
		AvgHoursPerEmployee:  avg,
		MaxHours:             maxHours,
		MinHours:             minHours,
		EmployeeStats:        stats,
		OverallFairnessScore: overallScore(workloadGini, stdDev, avg),
	}
}

// isWeekend 判断是否是周末
func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 计算方差
func variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// valueRange 计算极值
func valueRange(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}

// overallScore 计算综合公平性评分
func overallScore(workloadGini, stdDev, avgHours float64) float64 {
	const (
		giniWeight = 0.7
		cvWeight   = 0.3
	)

	giniScore := (1 - workloadGini) * 100

	cvScore := 100.0
	if avgHours > 0 {
		cv := stdDev / avgHours
		cvScore = math.Max(0, 100-cv*200)
	}

	score := giniWeight*giniScore + cvWeight*cvScore
	return math.Max(0, math.Min(100, score))
}
