package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/provider"
	"github.com/drm-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLedgerBudgetSync, c.handleLedgerBudgetSync)
	mux.HandleFunc(queue.TaskOrderDeadlineAlert, c.handleOrderDeadlineAlert)
}

func (c *Consumer) handleLedgerBudgetSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_budget_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LedgerBudgetSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_budget_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == "" {
		logger.Debugw("worker_budget_sync_skip_invalid_payload")
		return nil
	}
	if c.LedgerService == nil {
		logger.Warnw("worker_budget_sync_skip_ledger_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.LedgerService.ApplyBudgetSync(payload); err != nil {
		logger.Warnw("worker_budget_sync_failed",
			"tenant_id", payload.TenantID,
			"order_id", payload.OrderID,
			"operation", payload.Operation,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderDeadlineAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_deadline_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDeadlineAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_deadline_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == "" {
		logger.Debugw("worker_deadline_alert_skip_invalid_payload")
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.TenantID, payload.OrderID)
	if err != nil {
		logger.Warnw("worker_deadline_alert_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_deadline_alert_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	// 同一発注同种警报一日一次
	since := time.Now().AddDate(0, 0, -1)
	exists, err := c.DeadlineAlertRepo.ExistsForOrder(order.ID, payload.AlertType, since)
	if err != nil {
		return err
	}
	if exists {
		logger.Debugw("worker_deadline_alert_skip_duplicate", "order_id", order.ID, "alert_type", payload.AlertType)
		return nil
	}

	message := fmt.Sprintf("発注書 %s の発注期限まで残り%d日です", order.OrderNo, payload.DaysLeft)
	if payload.AlertType == "overdue" {
		message = fmt.Sprintf("発注書 %s は発注期限を超過しています", order.OrderNo)
	}
	alert := &models.DeadlineAlert{
		TenantID:  order.TenantID,
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		AlertType: payload.AlertType,
		DaysLeft:  payload.DaysLeft,
		Message:   message,
	}
	if err := c.DeadlineAlertRepo.Create(alert); err != nil {
		logger.Warnw("worker_deadline_alert_create_failed", "order_id", order.ID, "error", err)
		return err
	}
	logger.Infow("worker_deadline_alert_recorded",
		"tenant_id", order.TenantID,
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"alert_type", payload.AlertType,
		"days_left", payload.DaysLeft,
	)
	return nil
}
