// Package generator 提供自动排班生成引擎：给定排班周期、营业时间、
// 人员需求与员工花名册，产出满足硬约束并优化软偏好的排班事件。
//
// 引擎是确定性的贪心启发式：逐日、逐时段、逐岗位对候选人评分后
// 择优分配。日与时段的处理顺序是正确性不变量——后续评分依赖先前
// 分配累积的状态，单次运行内必须顺序执行。引擎本身不做持久化、
// 不抛"无可行解"：欠员是受约束启发式搜索的正常结果。
package generator

import (
	"context"
	"time"

	"github.com/shiftgen/shiftgen/pkg/errors"
	"github.com/shiftgen/shiftgen/pkg/logger"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// WeekEndDay 周界日：处理完周六后重置周累计量（周以周日开始）。
// 具名常量而非隐藏字面量，固定策略，默认行为不可变。
const WeekEndDay = time.Saturday

// Generator 排班生成器
type Generator struct {
	log *logger.GeneratorLogger
}

// New 创建排班生成器
func New() *Generator {
	return &Generator{
		log: logger.NewGeneratorLogger(),
	}
}

// Generate 生成整个排班周期的排班事件。
//
// 纯内存计算，不发生阻塞 I/O；完整跑完或整体失败，没有部分
// 结果契约。返回错误仅来自上下文取消或无法解析的周期日期；
// 欠员、某日无营业时间、某时段无需求都按"此处无需求"静默跳过。
// 花名册的可变工作状态在运行内部独立持有，并发调用互不影响。
func (g *Generator) Generate(ctx context.Context, cfg *model.ShiftGenerationConfig) ([]*model.ShiftEvent, error) {
	cfg.ApplyDefaults()

	start, err := model.ParseDate(cfg.StartDate)
	if err != nil {
		return nil, errors.InvalidInput("start_date", err.Error())
	}
	end, err := model.ParseDate(cfg.EndDate)
	if err != nil {
		return nil, errors.InvalidInput("end_date", err.Error())
	}
	if end.Before(start) {
		return nil, errors.New(errors.CodeInvalidTimeRange, "结束日期早于开始日期")
	}

	startedAt := time.Now()
	days := int(end.Sub(start).Hours()/24) + 1
	g.log.StartGeneration(cfg.StartDate, cfg.EndDate, len(cfg.Employees), days)

	run := newRunState(cfg.Employees)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g.processDay(run, d, cfg)

		// 周界重置：不论当日是否营业，周六日终清零周累计量
		if d.Weekday() == WeekEndDay {
			run.resetWeek()
		}
	}

	g.log.GenerationComplete(len(run.events), time.Since(startedAt))
	return run.events, nil
}

// processDay 处理单个日期：解析营业时间、切分时段、逐岗位分配
func (g *Generator) processDay(run *runState, date time.Time, cfg *model.ShiftGenerationConfig) {
	bh := cfg.BusinessHourFor(date.Weekday())
	if bh == nil {
		return // 当日不营业
	}

	window, err := bh.WindowOn(date)
	if err != nil {
		return
	}

	slots := model.SplitWindow(window)
	for i, slotName := range model.AllTimeSlots() {
		req := cfg.RequirementFor(date.Weekday(), slotName)
		if req == nil {
			continue // 该时段无需求
		}

		for _, target := range req.PositionTargets() {
			if target.Count <= 0 {
				continue
			}

			assigned := g.allocateSlot(run, date, slots[i], target.Position, target.Count, cfg)
			if len(assigned) < target.Count {
				g.log.SlotUnderfilled(
					date.Format(model.DateLayout), string(slotName),
					target.Position, target.Count, len(assigned),
				)
			}
		}
	}
}
