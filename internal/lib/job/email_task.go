package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome                 = "email:welcome"
	TaskTransactionNotification = "email:transaction"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// WelcomeEmailPayload is the payload of TaskWelcome.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// NewWelcomeEmailTask builds the welcome e-mail task for a new account.
func NewWelcomeEmailTask(p WelcomeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	), nil
}

// TransactionNotificationPayload is the payload of
// TaskTransactionNotification. Kind is "transfer" or "offer".
type TransactionNotificationPayload struct {
	TransactionID int64  `json:"transaction_id"`
	Kind          string `json:"kind"`
	To            string `json:"to"`
	RecipientName string `json:"recipient_name"`
	SenderName    string `json:"sender_name"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// NewTransactionNotificationTask builds the counterparty notification of a
// transfer or offer. The transaction id keys the task so a retried request
// cannot notify twice.
func NewTransactionNotificationTask(p TransactionNotificationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTransactionNotification,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
		asynq.TaskID(transactionTaskID(p.TransactionID)),
	), nil
}

func transactionTaskID(id int64) string {
	return fmt.Sprintf("transaction-notification:%d", id)
}
