package generator

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftgen/shiftgen/pkg/model"
)

func TestResolveAvailability(t *testing.T) {
	empID := uuid.New()
	otherID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	at := func(day, hour int) time.Time {
		return time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC)
	}

	avail := func(id uuid.UUID, day, start, end, priority int) model.EmployeeAvailability {
		return model.EmployeeAvailability{
			EmployeeID: id,
			Date:       time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
			StartTime:  at(day, start),
			EndTime:    at(day, end),
			Priority:   priority,
		}
	}

	tests := []struct {
		name           string
		availabilities []model.EmployeeAvailability
		windowStart    time.Time
		windowEnd      time.Time
		wantAvailable  bool
		wantPriority   int
	}{
		{
			name:           "无任何记录时默认开放",
			availabilities: nil,
			windowStart:    at(10, 9),
			windowEnd:      at(10, 13),
			wantAvailable:  true,
			wantPriority:   0,
		},
		{
			name: "他人的记录不影响默认开放",
			availabilities: []model.EmployeeAvailability{
				avail(otherID, 10, 9, 17, 5),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: true,
			wantPriority:  0,
		},
		{
			name: "其他日期的记录不影响默认开放",
			availabilities: []model.EmployeeAvailability{
				avail(empID, 11, 9, 17, 5),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: true,
			wantPriority:  0,
		},
		{
			name: "记录完全包含候选窗",
			availabilities: []model.EmployeeAvailability{
				avail(empID, 10, 8, 18, 4),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: true,
			wantPriority:  4,
		},
		{
			name: "边界重合也算包含",
			availabilities: []model.EmployeeAvailability{
				avail(empID, 10, 9, 13, 3),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: true,
			wantPriority:  3,
		},
		{
			name: "部分重叠不算可用",
			availabilities: []model.EmployeeAvailability{
				avail(empID, 10, 10, 18, 5),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: false,
			wantPriority:  0,
		},
		{
			name: "多条记录取首条包含者",
			availabilities: []model.EmployeeAvailability{
				avail(empID, 10, 14, 18, 5),
				avail(empID, 10, 8, 14, 2),
			},
			windowStart:   at(10, 9),
			windowEnd:     at(10, 13),
			wantAvailable: true,
			wantPriority:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, priority := ResolveAvailability(empID, date, tt.windowStart, tt.windowEnd, tt.availabilities)
			if available != tt.wantAvailable {
				t.Errorf("available = %v, want %v", available, tt.wantAvailable)
			}
			if priority != tt.wantPriority {
				t.Errorf("priority = %d, want %d", priority, tt.wantPriority)
			}
		})
	}
}
