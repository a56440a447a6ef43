package interfaces

import "context"

// INotifier sends an SMS reply and returns the provider message id.
type INotifier interface {
	SendReply(ctx context.Context, to, body string) (string, error)
}

// ITurnLocker serializes turns for one key. The returned func releases the lock.
type ITurnLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}
