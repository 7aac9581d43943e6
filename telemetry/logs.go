package telemetry

// Logger is how timemanager components report what they are doing.  By
// default nothing is logged; embedders provide an implementation to route
// messages into their own logging stack.
type Logger interface {
	Info(msg string)
	Debug(msg string)
	Error(msg string, err error)
}

type NOPLogger struct {
}

func (n NOPLogger) Info(msg string) {
}
func (n NOPLogger) Debug(msg string) {
}
func (n NOPLogger) Error(msg string, err error) {
}
