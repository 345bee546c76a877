package core

// Logger is the app-wide leveled logger. Implementations may inspect args for
// known types (eg. errors for stack traces, the acting user for tagging).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
