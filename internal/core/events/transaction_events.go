package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionUpdated = "transaction.updated"
	EventTypeTransactionDeleted = "transaction.deleted"
)

type TransactionCreatedEvent struct {
	BaseEvent
	TransactionID string `json:"transaction_id"`
	Type          string `json:"transaction_type"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
}

func NewTransactionCreatedEvent(transactionID, txType, category, amount string) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTransactionCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id":   transactionID,
				"transaction_type": txType,
				"category":         category,
				"amount":           amount,
			},
		},
		TransactionID: transactionID,
		Type:          txType,
		Category:      category,
		Amount:        amount,
	}
}

type TransactionUpdatedEvent struct {
	BaseEvent
	TransactionID string   `json:"transaction_id"`
	ChangedFields []string `json:"changed_fields"`
}

func NewTransactionUpdatedEvent(transactionID string, changedFields []string) *TransactionUpdatedEvent {
	return &TransactionUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTransactionUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"changed_fields": changedFields,
			},
		},
		TransactionID: transactionID,
		ChangedFields: changedFields,
	}
}

type TransactionDeletedEvent struct {
	BaseEvent
	TransactionID string `json:"transaction_id"`
}

func NewTransactionDeletedEvent(transactionID string) *TransactionDeletedEvent {
	return &TransactionDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTransactionDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"transaction_id": transactionID,
			},
		},
		TransactionID: transactionID,
	}
}
