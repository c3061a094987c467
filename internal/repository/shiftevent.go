package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

// ShiftEventRepository 排班事件仓储
type ShiftEventRepository struct {
	db DB
}

// NewShiftEventRepository 创建排班事件仓储
func NewShiftEventRepository(db DB) *ShiftEventRepository {
	return &ShiftEventRepository{db: db}
}

// Create 创建排班事件
func (r *ShiftEventRepository) Create(ctx context.Context, event *model.ShiftEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO shift_events (id, title, start_time, end_time, employee_id, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.StartTime, event.EndTime, event.EmployeeID, event.Position,
	)
	if err != nil {
		return fmt.Errorf("创建排班事件失败: %w", err)
	}

	return nil
}

// BatchCreate 批量创建排班事件（单条语句多值插入）
func (r *ShiftEventRepository) BatchCreate(ctx context.Context, events []*model.ShiftEvent) error {
	if len(events) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*6)
	for i, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, e.ID, e.Title, e.StartTime, e.EndTime, e.EmployeeID, e.Position)
	}

	query := fmt.Sprintf(`
		INSERT INTO shift_events (id, title, start_time, end_time, employee_id, position)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("批量创建排班事件失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取排班事件
func (r *ShiftEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShiftEvent, error) {
	query := `
		SELECT id, title, start_time, end_time, employee_id, position
		FROM shift_events
		WHERE id = $1
	`

	event := &model.ShiftEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.StartTime, &event.EndTime, &event.EmployeeID, &event.Position,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询排班事件失败: %w", err)
	}

	return event, nil
}

// ListByDateRange 查询日期范围内的排班事件
func (r *ShiftEventRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*model.ShiftEvent, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("解析开始日期失败: %w", err)
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("解析结束日期失败: %w", err)
	}

	query := `
		SELECT id, title, start_time, end_time, employee_id, position
		FROM shift_events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time, position, employee_id
	`

	rows, err := r.db.QueryContext(ctx, query, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("查询排班事件失败: %w", err)
	}
	defer rows.Close()

	var events []*model.ShiftEvent
	for rows.Next() {
		event := &model.ShiftEvent{}
		if err := rows.Scan(
			&event.ID, &event.Title, &event.StartTime, &event.EndTime, &event.EmployeeID, &event.Position,
		); err != nil {
			return nil, fmt.Errorf("扫描排班事件失败: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// ListByEmployee 查询员工的排班事件
func (r *ShiftEventRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*model.ShiftEvent, error) {
	query := `
		SELECT id, title, start_time, end_time, employee_id, position
		FROM shift_events
		WHERE employee_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("查询排班事件失败: %w", err)
	}
	defer rows.Close()

	var events []*model.ShiftEvent
	for rows.Next() {
		event := &model.ShiftEvent{}
		if err := rows.Scan(
			&event.ID, &event.Title, &event.StartTime, &event.EndTime, &event.EmployeeID, &event.Position,
		); err != nil {
			return nil, fmt.Errorf("扫描排班事件失败: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// DeleteByDateRange 删除日期范围内的排班事件（重新生成前清空旧结果）
func (r *ShiftEventRepository) DeleteByDateRange(ctx context.Context, startDate, endDate string) (int64, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("解析开始日期失败: %w", err)
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("解析结束日期失败: %w", err)
	}

	query := `DELETE FROM shift_events WHERE start_time >= $1 AND start_time < $2`

	result, err := r.db.ExecContext(ctx, query, start, end.AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("删除排班事件失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
