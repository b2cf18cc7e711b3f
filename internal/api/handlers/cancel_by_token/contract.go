package cancel_by_token

import "context"

type BookingService interface {
	CancelByToken(ctx context.Context, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
