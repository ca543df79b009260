// Package logging 定义项目内统一使用的结构化日志接口。
package logging

import "context"

// Logger 是带 context 的结构化日志接口，args 以键值对形式传入：
//
//	log.Info(ctx, "entry logged", "user_id", id, "calories", kcal)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With 返回总是附带给定键值对的子 logger
	With(args ...any) Logger
}
