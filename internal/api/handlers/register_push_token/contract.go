package register_push_token

import "context"

type PushTokenRegistrar interface {
	RegisterPushToken(ctx context.Context, userID int64, deviceID, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
