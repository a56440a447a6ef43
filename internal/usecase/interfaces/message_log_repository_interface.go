package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IMessageLogRepository stores inbound and outbound SMS.
//
// Record reports false when a message with the same id was already stored,
// which is how webhook redeliveries are detected.
type IMessageLogRepository interface {
	Record(ctx context.Context, msg entities.SMSMessage) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
