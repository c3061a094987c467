// Package generator 提供自动排班生成引擎
package generator

import (
	"time"

	"github.com/shiftgen/shiftgen/pkg/model"
)

// empState 员工在单次生成运行内的工作状态。
// 每次运行为花名册建立独立的状态区，员工的标识与配置字段
// 保持只读，可变累计量只存在于这里，并发运行互不可见。
type empState struct {
	emp  *model.Employee
	work model.WorkState

	assignedDates map[string]bool // 本次运行内已分配班次的日期
	lastShiftEnd  time.Time       // 本次运行内最晚的班次结束时间
}

// runState 单次生成运行的全部可变状态
type runState struct {
	states []*empState // 保持花名册原始顺序
	events []*model.ShiftEvent
}

// newRunState 为花名册建立运行状态区
func newRunState(employees []*model.Employee) *runState {
	states := make([]*empState, 0, len(employees))
	for _, emp := range employees {
		states = append(states, &empState{
			emp:           emp,
			assignedDates: make(map[string]bool),
		})
	}
	return &runState{
		states: states,
		events: make([]*model.ShiftEvent, 0),
	}
}

// recordAssignment 记录一次分配并推进员工状态
func (s *empState) recordAssignment(date time.Time, event *model.ShiftEvent) {
	s.work.WeeklyWorkHours += event.Hours()
	s.work.WeeklyShiftCount++
	s.work.LastAssignedDate = date.Format(model.DateLayout)
	s.assignedDates[s.work.LastAssignedDate] = true
	if event.EndTime.After(s.lastShiftEnd) {
		s.lastShiftEnd = event.EndTime
	}
}

// resetWeek 周界重置所有员工的周累计量
func (r *runState) resetWeek() {
	for _, s := range r.states {
		s.work.ResetWeek()
	}
}
