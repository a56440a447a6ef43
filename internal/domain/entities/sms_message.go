package entities

import "time"

type MessageDirection string

const (
	MessageDirectionInbound  MessageDirection = "inbound"
	MessageDirectionOutbound MessageDirection = "outbound"
)

// SMSMessage is an entry of the SMS log.
//
// Inbound entries use the provider message id as PK, so a webhook redelivery
// of the same physical SMS is detected by a conditional put.
type SMSMessage struct {
	ID         string           `json:"id"`
	BusinessID string           `json:"business_id,omitempty"`
	FromNumber string           `json:"from_number"`
	ToNumber   string           `json:"to_number"`
	Body       string           `json:"body"`
	Direction  MessageDirection `json:"direction"`
	Status     string           `json:"status,omitempty"`
	DocumentID string           `json:"document_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
