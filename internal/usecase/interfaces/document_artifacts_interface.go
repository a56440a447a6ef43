package interfaces

import (
	"context"

	"sms_invoicer/internal/domain/entities"
)

// IPDFRenderer produces the printable form of a document.
type IPDFRenderer interface {
	Render(ctx context.Context, data entities.DocumentPDFData) ([]byte, error)
}

// IFileStorage stores a blob and returns a URL the recipient can open.
type IFileStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
