package weatherclock

import (
	"fmt"
)

type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...any)
	Info(msg string)
	Infof(format string, v ...any)
}

// serialLogger is a bare-bones logger that outputs to whatever println is hooked up to (the UART on firmware builds).
// It has no concept of levels and will output everything at every level.
type serialLogger struct{}

func (serialLogger) Debug(msg string) {
	println(msg)
}

func (serialLogger) Debugf(format string, v ...any) {
	println(fmt.Sprintf(format, v...))
}

func (serialLogger) Info(msg string) {
	println(msg)
}

func (serialLogger) Infof(format string, v ...any) {
	println(fmt.Sprintf(format, v...))
}
