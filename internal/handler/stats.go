package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shiftgen/shiftgen/pkg/logger"
	"github.com/shiftgen/shiftgen/pkg/model"
	"github.com/shiftgen/shiftgen/pkg/stats"
)

// FairnessRequest 公平性分析请求
type FairnessRequest struct {
	Employees []*model.Employee   `json:"employees"`
	Events    []*model.ShiftEvent `json:"events"`
}

// FairnessResponse 公平性响应
type FairnessResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.FairnessMetrics `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// CoverageRequest 覆盖率分析请求（需求表来自生成输入）
type CoverageRequest struct {
	Config *model.ShiftGenerationConfig `json:"config"`
	Events []*model.ShiftEvent          `json:"events"`
}

// CoverageResponse 覆盖率响应
type CoverageResponse struct {
	Success bool                  `json:"success"`
	Data    *stats.CoverageReport `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// GetFairnessHandler 公平性分析API
func GetFairnessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FairnessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "解析请求失败: "+err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info().
		Int("employees", len(req.Employees)).
		Int("events", len(req.Events)).
		Msg("接收公平性分析请求")

	metrics := stats.NewFairnessAnalyzer().Analyze(req.Events, req.Employees)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FairnessResponse{Success: true, Data: metrics})
}

// GetCoverageHandler 覆盖率分析API
func GetCoverageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "解析请求失败: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Config == nil {
		sendJSONError(w, "缺少生成配置", http.StatusBadRequest)
		return
	}

	logger.Info().
		Str("start_date", req.Config.StartDate).
		Str("end_date", req.Config.EndDate).
		Int("events", len(req.Events)).
		Msg("接收覆盖率分析请求")

	report := stats.NewCoverageAnalyzer().Analyze(req.Config, req.Events)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CoverageResponse{Success: true, Data: report})
}

// sendJSONError 返回JSON错误响应
func sendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
