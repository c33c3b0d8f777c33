package goSignup

import "context"

type contextKey uint8

const (
	ctxKeyClientIP contextKey = iota
)

// WithClientIP attaches the caller's network address to the context. The
// engine never acts on it; it is carried into audit events only.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if ip, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return ip
	}
	return ""
}
