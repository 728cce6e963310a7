package jvt220

type logger struct {
	fn func(string, ...interface{})
}

var tlog logger

// SetLogger installs a printf-style logger for sequences the emulator
// does not handle. Useful when debugging misbehaving applications.
func SetLogger(l func(string, ...interface{})) {
	tlog.fn = l
}

func (l *logger) Printf(s string, args ...interface{}) {
	if l.fn == nil {
		return
	}
	l.fn(s, args...)
}
