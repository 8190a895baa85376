// Package log defines the minimal logging seam DKG and sign-machine
// constructors accept, following the Logger interface gjkr/member.go takes
// from the teacher's ephemeral key exchange members. No third-party
// structured-logging library appears anywhere in the retrieved pack for
// this domain, so this ambient concern is carried on the standard library
// `log` package rather than left unimplemented.
package log

import stdlog "log"

// Logger is the narrow interface DKG and signing machines log through.
// A nil Logger is valid and silences all output.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Std adapts the standard library's *log.Logger to Logger.
type Std struct {
	*stdlog.Logger
}

func (s *Std) Debugf(format string, args ...any) { s.Printf("DEBUG "+format, args...) }
func (s *Std) Warnf(format string, args ...any)  { s.Printf("WARN "+format, args...) }

// Default returns a Std logger writing to the standard library's default
// destination with a "frost: " prefix.
func Default() *Std {
	return &Std{stdlog.New(stdlog.Writer(), "frost: ", stdlog.LstdFlags)}
}

func maybe(l Logger) Logger {
	if l == nil {
		return noop{}
	}
	return l
}

// Maybe is exported so callers composing machines can normalize an
// optionally-nil Logger once.
func Maybe(l Logger) Logger { return maybe(l) }

type noop struct{}

func (noop) Debugf(string, ...any) {}
func (noop) Warnf(string, ...any)  {}
