// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/shiftgen/shiftgen/pkg/model"
)

// CoverageReport 覆盖率报告。
// 引擎本身不输出覆盖率信号——欠员通过对比需求表与产出数量
// 在调用侧推导，这里就是那份推导报告。
type CoverageReport struct {
	TotalRequired int     `json:"total_required"` // 需求总人次
	TotalAssigned int     `json:"total_assigned"` // 实际分配人次
	FillRate      float64 `json:"fill_rate"`      // 满足率 (%)

	Slots       []SlotCoverage `json:"slots"`                 // 各时段覆盖明细
	Underfilled []SlotCoverage `json:"underfilled,omitempty"` // 欠员时段
}

// SlotCoverage 单个 (日期, 时段, 岗位) 的覆盖情况
type SlotCoverage struct {
	Date     string         `json:"date"`
	Slot     model.TimeSlot `json:"slot"`
	Position string         `json:"position"`
	Required int            `json:"required"`
	Assigned int            `json:"assigned"`
	Shortage int            `json:"shortage"`
}

// CoverageAnalyzer 覆盖率分析器
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 对比生成输入的需求表与产出事件，推导覆盖率。
// 与引擎采用相同的时段切分，因此事件按 (日期, 时段起点, 岗位)
// 精确归位。
func (c *CoverageAnalyzer) Analyze(cfg *model.ShiftGenerationConfig, events []*model.ShiftEvent) *CoverageReport {
	report := &CoverageReport{
		Slots: make([]SlotCoverage, 0),
	}

	start, err := model.ParseDate(cfg.StartDate)
	if err != nil {
		return report
	}
	end, err := model.ParseDate(cfg.EndDate)
	if err != nil {
		return report
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		bh := cfg.BusinessHourFor(d.Weekday())
		if bh == nil {
			continue
		}
		window, err := bh.WindowOn(d)
		if err != nil {
			continue
		}

		slots := model.SplitWindow(window)
		for i, slotName := range model.AllTimeSlots() {
			req := cfg.RequirementFor(d.Weekday(), slotName)
			if req == nil {
				continue
			}

			for _, target := range req.PositionTargets() {
				if target.Count <= 0 {
					continue
				}

				assigned := countAssigned(events, slots[i], target.Position)
				sc := SlotCoverage{
					Date:     d.Format(model.DateLayout),
					Slot:     slotName,
					Position: target.Position,
					Required: target.Count,
					Assigned: assigned,
					Shortage: target.Count - assigned,
				}
				if sc.Shortage < 0 {
					sc.Shortage = 0
				}

				report.TotalRequired += target.Count
				report.TotalAssigned += assigned
				report.Slots = append(report.Slots, sc)
				if sc.Shortage > 0 {
					report.Underfilled = append(report.Underfilled, sc)
				}
			}
		}
	}

	if report.TotalRequired > 0 {
		report.FillRate = float64(report.TotalAssigned) / float64(report.TotalRequired) * 100
	} else {
		report.FillRate = 100
	}

	return report
}

// countAssigned 统计落在指定时段窗口和岗位上的事件数
func countAssigned(events []*model.ShiftEvent, slot model.TimeRange, position string) int {
	count := 0
	for _, e := range events {
		if e.Position == position && e.StartTime.Equal(slot.Start) && e.EndTime.Equal(slot.End) {
			count++
		}
	}
	return count
}
