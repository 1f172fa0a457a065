package queue

import (
	"encoding/json"

	"github.com/drm-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLedgerBudgetSync 工事台账预算同步任务
	TaskLedgerBudgetSync = constants.TaskLedgerBudgetSync
	// TaskOrderDeadlineAlert 発注期限警报任务
	TaskOrderDeadlineAlert = constants.TaskOrderDeadlineAlert
)

// LedgerBudgetSyncPayload 预算同步任务载荷
type LedgerBudgetSyncPayload struct {
	TenantID  string `json:"tenant_id"`
	OrderID   string `json:"order_id"`
	Operation string `json:"operation"` // add / subtract
}

// OrderDeadlineAlertPayload 発注期限警报任务载荷
type OrderDeadlineAlertPayload struct {
	TenantID  string `json:"tenant_id"`
	OrderID   string `json:"order_id"`
	AlertType string `json:"alert_type"` // approaching / overdue
	DaysLeft  int    `json:"days_left"`
}

// NewLedgerBudgetSyncTask 创建预算同步任务
func NewLedgerBudgetSyncTask(payload LedgerBudgetSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerBudgetSync, body), nil
}

// NewOrderDeadlineAlertTask 创建発注期限警报任务
func NewOrderDeadlineAlertTask(payload OrderDeadlineAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDeadlineAlert, body), nil
}
