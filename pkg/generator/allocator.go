// Package generator 提供自动排班生成引擎
package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// scoredCandidate 候选人及其得分
type scoredCandidate struct {
	state *empState
	score float64
}

// allocateSlot 为单个 (日期, 时段, 岗位, 需求人数) 分配员工。
//
// 对花名册全员评分，丢弃得分小于等于 EligibilityThreshold 的
// 候选人，按得分降序稳定排序（同分保持花名册顺序），取前
// min(N, 合格人数) 名发出 ShiftEvent 并推进其工作状态。
// 合格人数不足 N 不是错误——欠员由调用方通过对比需求与产出
// 数量自行察觉。
//
// 评分阶段不发生任何状态突变，状态只在随后的分配阶段推进，
// 因此后续时段的评分能看到最新负载。
func (g *Generator) allocateSlot(
	run *runState,
	date time.Time,
	slot model.TimeRange,
	position string,
	count int,
	cfg *model.ShiftGenerationConfig,
) []*model.ShiftEvent {
	candidates := make([]scoredCandidate, 0, len(run.states))
	for _, st := range run.states {
		score := scoreCandidate(st, date, slot, position, cfg)
		if score <= EligibilityThreshold {
			continue
		}
		candidates = append(candidates, scoredCandidate{state: st, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := count
	if len(candidates) < n {
		n = len(candidates)
	}

	assigned := make([]*model.ShiftEvent, 0, n)
	for _, c := range candidates[:n] {
		event := &model.ShiftEvent{
			ID:         uuid.New(),
			Title:      fmt.Sprintf("%s - %s", c.state.emp.Name, position),
			StartTime:  slot.Start,
			EndTime:    slot.End,
			EmployeeID: c.state.emp.ID,
			Position:   position,
		}
		c.state.recordAssignment(date, event)
		run.events = append(run.events, event)
		assigned = append(assigned, event)
	}

	return assigned
}
