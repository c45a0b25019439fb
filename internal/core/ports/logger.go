package ports

// Logger is the minimal logging surface the view-models and adapters use.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
