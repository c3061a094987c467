// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/internal/config"
	"github.com/shiftgen/shiftgen/internal/database"
	"github.com/shiftgen/shiftgen/internal/metrics"
	"github.com/shiftgen/shiftgen/internal/repository"
	"github.com/shiftgen/shiftgen/pkg/errors"
	"github.com/shiftgen/shiftgen/pkg/generator"
	"github.com/shiftgen/shiftgen/pkg/logger"
	"github.com/shiftgen/shiftgen/pkg/model"
	"github.com/shiftgen/shiftgen/pkg/stats"
	shiftvalidator "github.com/shiftgen/shiftgen/pkg/validator"
)

// validate 请求DTO结构体验证器
var validate = validator.New(validator.WithRequiredStructEnabled())

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	gen *generator.Generator
	db  *database.DB // 可为 nil（未启用持久化时）
	cfg *config.GeneratorConfig
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(gen *generator.Generator, db *database.DB, cfg *config.GeneratorConfig) *ScheduleHandler {
	return &ScheduleHandler{gen: gen, db: db, cfg: cfg}
}

// GenerateRequest 排班生成请求
type GenerateRequest struct {
	StartDate      string              `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string              `json:"end_date" validate:"required,datetime=2006-01-02"`
	BusinessHours  []BusinessHourInput `json:"business_hours" validate:"required,min=1,dive"`
	Employees      []EmployeeInput     `json:"employees" validate:"required,min=1,dive"`
	Requirements   []RequirementInput  `json:"requirements" validate:"required,min=1,dive"`
	Availabilities []AvailabilityInput `json:"availabilities,omitempty" validate:"omitempty,dive"`
	Options        *GenerateOptions    `json:"options,omitempty"`
}

// BusinessHourInput 营业时间输入
type BusinessHourInput struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	OpenTime  string `json:"open_time" validate:"required,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"required,datetime=15:04"`
}

// EmployeeInput 员工输入
type EmployeeInput struct {
	ID              string   `json:"id" validate:"required,uuid"`
	Name            string   `json:"name" validate:"required"`
	Code            string   `json:"code,omitempty"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=active inactive leave"`
	MaxHoursPerWeek int      `json:"max_hours_per_week" validate:"required,gt=0"`
	MinHoursPerWeek int      `json:"min_hours_per_week,omitempty" validate:"gte=0"`
	Positions       []string `json:"positions,omitempty"`
	PreferredDays   []int    `json:"preferred_days,omitempty" validate:"omitempty,dive,gte=0,lte=6"`
	FulfillmentRate float64  `json:"fulfillment_rate,omitempty" validate:"gte=0,lte=1"`
}

// RequirementInput 人员需求输入
type RequirementInput struct {
	Weekday   int            `json:"weekday" validate:"gte=0,lte=6"`
	Slot      string         `json:"slot" validate:"required,oneof=morning afternoon evening"`
	Count     int            `json:"count" validate:"gte=0"`
	Positions map[string]int `json:"positions,omitempty"`
}

// AvailabilityInput 员工可用性输入
type AvailabilityInput struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
	Priority   int    `json:"priority" validate:"gte=0,lte=5"`
	Note       string `json:"note,omitempty"`
}

// GenerateOptions 生成选项
type GenerateOptions struct {
	MaxConsecutiveDays         int  `json:"max_consecutive_days,omitempty" validate:"gte=0"`
	MinRestHours               int  `json:"min_rest_hours,omitempty" validate:"gte=0"`
	PrioritizeEvenDistribution bool `json:"prioritize_even_distribution,omitempty"`
	EnforcePositionMatch       bool `json:"enforce_position_match,omitempty"`
	TimeoutSeconds             int  `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`
	Persist                    bool `json:"persist,omitempty"` // 写入数据库（需服务端启用）
}

// GenerateResponse 排班生成响应
type GenerateResponse struct {
	Success   bool                      `json:"success"`
	Events    []EventOutput             `json:"events"`
	Coverage  *stats.CoverageReport     `json:"coverage"`
	Fairness  *stats.FairnessMetrics    `json:"fairness"`
	Conflicts []shiftvalidator.Conflict `json:"conflicts,omitempty"`
	Persisted bool                      `json:"persisted"`
	Duration  string                    `json:"duration"`
}

// EventOutput 排班事件输出
type EventOutput struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Position     string  `json:"position"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        float64 `json:"hours"`
}

// Generate 生成排班
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if err := validateGenerateRequest(&req); err != nil {
		respondError(w, err)
		return
	}

	cfg, appErr := buildGenerationConfig(&req)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	// 请求未显式指定的策略参数回落到服务端配置
	if cfg.MaxConsecutiveDays <= 0 {
		cfg.MaxConsecutiveDays = h.cfg.MaxConsecutiveDays
	}
	if cfg.MinRestHours <= 0 {
		cfg.MinRestHours = h.cfg.MinRestHours
	}

	timeout := h.cfg.DefaultTimeout
	if req.Options != nil && req.Options.TimeoutSeconds > 0 {
		timeout = time.Duration(req.Options.TimeoutSeconds) * time.Second
	}
	genCtx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	startedAt := time.Now()
	events, err := h.gen.Generate(genCtx, cfg)
	duration := time.Since(startedAt)

	if err != nil {
		metrics.RecordGeneration(false, 0, duration)
		if err == context.DeadlineExceeded {
			respondError(w, errors.New(errors.CodeTimeout, "排班计算超时，请尝试减少员工数量或缩短排班周期"))
			return
		}
		if err == context.Canceled {
			respondError(w, errors.New(errors.CodeInternal, "排班请求已取消"))
			return
		}
		if appErr, ok := err.(*errors.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "排班生成失败"))
		return
	}

	coverage := stats.NewCoverageAnalyzer().Analyze(cfg, events)
	fairness := stats.NewFairnessAnalyzer().Analyze(events, cfg.Employees)
	conflicts := detectConflicts(cfg, events)

	metrics.RecordGeneration(true, len(events), duration)
	metrics.SetCoverageRate(coverage.FillRate)
	metrics.SetUnderfilledSlots(len(coverage.Underfilled))
	metrics.SetFairnessGini(fairness.WorkloadGini)

	persisted := false
	if req.Options != nil && req.Options.Persist {
		if h.db == nil || !h.cfg.PersistResults {
			respondError(w, errors.New(errors.CodeInvalidInput, "服务端未启用排班结果持久化"))
			return
		}
		if err := h.persistEvents(r.Context(), cfg, events); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存排班结果失败"))
			return
		}
		persisted = true
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Success:   true,
		Events:    buildEventOutputs(cfg, events),
		Coverage:  coverage,
		Fairness:  fairness,
		Conflicts: conflicts,
		Persisted: persisted,
		Duration:  duration.String(),
	})
}

// validateGenerateRequest 验证请求DTO
func validateGenerateRequest(req *GenerateRequest) *errors.AppError {
	if err := validate.Struct(req); err != nil {
		ve := &errors.ValidationErrors{}
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				ve.Add(fe.Namespace(), "不满足规则 '"+fe.Tag()+"'")
			}
			return ve.ToAppError()
		}
		return errors.Wrap(err, errors.CodeValidationFail, "验证失败")
	}

	start, _ := model.ParseDate(req.StartDate)
	end, _ := model.ParseDate(req.EndDate)
	if end.Before(start) {
		return errors.New(errors.CodeInvalidTimeRange, "结束日期早于开始日期")
	}

	return nil
}

// buildGenerationConfig 将请求DTO转换为引擎输入
func buildGenerationConfig(req *GenerateRequest) (*model.ShiftGenerationConfig, *errors.AppError) {
	cfg := &model.ShiftGenerationConfig{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	for _, bh := range req.BusinessHours {
		cfg.BusinessHours = append(cfg.BusinessHours, model.BusinessHour{
			Weekday:   time.Weekday(bh.Weekday),
			OpenTime:  bh.OpenTime,
			CloseTime: bh.CloseTime,
		})
	}

	for _, e := range req.Employees {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的员工ID格式: "+e.ID)
		}

		status := e.Status
		if status == "" {
			status = "active"
		}

		var preferred []time.Weekday
		for _, d := range e.PreferredDays {
			preferred = append(preferred, time.Weekday(d))
		}

		cfg.Employees = append(cfg.Employees, &model.Employee{
			BaseModel:       model.BaseModel{ID: id},
			Name:            e.Name,
			Code:            e.Code,
			Status:          status,
			MaxHoursPerWeek: e.MaxHoursPerWeek,
			MinHoursPerWeek: e.MinHoursPerWeek,
			Positions:       e.Positions,
			PreferredDays:   preferred,
			FulfillmentRate: e.FulfillmentRate,
		})
	}

	for _, r := range req.Requirements {
		cfg.Requirements = append(cfg.Requirements, model.StaffRequirement{
			Weekday:   time.Weekday(r.Weekday),
			Slot:      model.TimeSlot(r.Slot),
			Count:     r.Count,
			Positions: r.Positions,
		})
	}

	for _, a := range req.Availabilities {
		id, err := uuid.Parse(a.EmployeeID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidInput, "无效的员工ID格式: "+a.EmployeeID)
		}
		date, err := model.ParseDate(a.Date)
		if err != nil {
			return nil, errors.InvalidInput("availabilities.date", err.Error())
		}
		start, err := model.AtClock(date, a.StartTime)
		if err != nil {
			return nil, errors.InvalidInput("availabilities.start_time", err.Error())
		}
		end, err := model.AtClock(date, a.EndTime)
		if err != nil {
			return nil, errors.InvalidInput("availabilities.end_time", err.Error())
		}

		cfg.Availabilities = append(cfg.Availabilities, model.EmployeeAvailability{
			EmployeeID: id,
			Date:       date,
			StartTime:  start,
			EndTime:    end,
			Priority:   a.Priority,
			Note:       a.Note,
		})
	}

	if req.Options != nil {
		cfg.MaxConsecutiveDays = req.Options.MaxConsecutiveDays
		cfg.MinRestHours = req.Options.MinRestHours
		cfg.PrioritizeEvenDistribution = req.Options.PrioritizeEvenDistribution
		cfg.EnforcePositionMatch = req.Options.EnforcePositionMatch
	}

	return cfg, nil
}

// detectConflicts 对生成结果做事后冲突审计
func detectConflicts(cfg *model.ShiftGenerationConfig, events []*model.ShiftEvent) []shiftvalidator.Conflict {
	empMap := make(map[uuid.UUID]*model.Employee, len(cfg.Employees))
	for _, emp := range cfg.Employees {
		empMap[emp.ID] = emp
	}

	detector := shiftvalidator.NewConflictDetector(&shiftvalidator.DetectorConfig{
		MinRestHours:       cfg.MinRestHours,
		MaxConsecutiveDays: cfg.MaxConsecutiveDays,
		CheckPositions:     cfg.EnforcePositionMatch,
		CheckAvailability:  true,
		Availabilities:     cfg.Availabilities,
	})
	return detector.DetectAll(events, empMap)
}

// buildEventOutputs 构建事件输出DTO
func buildEventOutputs(cfg *model.ShiftGenerationConfig, events []*model.ShiftEvent) []EventOutput {
	nameMap := make(map[uuid.UUID]string, len(cfg.Employees))
	for _, emp := range cfg.Employees {
		nameMap[emp.ID] = emp.Name
	}

	outputs := make([]EventOutput, len(events))
	for i, e := range events {
		outputs[i] = EventOutput{
			ID:           e.ID.String(),
			Title:        e.Title,
			EmployeeID:   e.EmployeeID.String(),
			EmployeeName: nameMap[e.EmployeeID],
			Position:     e.Position,
			Date:         e.Date(),
			StartTime:    e.StartTime.Format(model.ClockLayout),
			EndTime:      e.EndTime.Format(model.ClockLayout),
			Hours:        e.Hours(),
		}
	}
	return outputs
}

// persistEvents 覆盖式保存生成结果：同一事务内清空周期内旧事件再批量写入，
// 避免失败时留下半新半旧的周期
func (h *ScheduleHandler) persistEvents(ctx context.Context, cfg *model.ShiftGenerationConfig, events []*model.ShiftEvent) error {
	return h.db.Transaction(ctx, func(tx *sql.Tx) error {
		repo := repository.NewShiftEventRepository(tx)

		deleted, err := repo.DeleteByDateRange(ctx, cfg.StartDate, cfg.EndDate)
		if err != nil {
			return err
		}
		if deleted > 0 {
			logger.Info().
				Int64("deleted", deleted).
				Str("start_date", cfg.StartDate).
				Str("end_date", cfg.EndDate).
				Msg("清空周期内旧排班事件")
		}

		return repo.BatchCreate(ctx, events)
	})
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}
