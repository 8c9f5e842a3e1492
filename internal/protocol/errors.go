package protocol

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error class sent to clients.
type Kind string

const (
	KindInputMalformed    Kind = "input_malformed"
	KindGenerationBlocked Kind = "generation_blocked"
	KindTransportError    Kind = "generation_transport_error"
	KindGenerationParse   Kind = "generation_parse_error"
	KindGenerationFailed  Kind = "generation_failed"
)

var (
	ErrInputMalformed      = errors.New("input malformed")
	ErrGenerationBlocked   = errors.New("generation blocked")
	ErrGenerationTransport = errors.New("generation transport error")
	ErrGenerationParse     = errors.New("generation parse error")
)

// GenerationError carries the error class and the internal cause. Only the
// Kind is meant to leave the server.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's Kind.
func (e *GenerationError) Is(target error) bool {
	switch e.Kind {
	case KindInputMalformed:
		return target == ErrInputMalformed
	case KindGenerationBlocked:
		return target == ErrGenerationBlocked
	case KindTransportError:
		return target == ErrGenerationTransport
	case KindGenerationParse:
		return target == ErrGenerationParse
	}
	return false
}

func newError(kind Kind, format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf classifies any error returned by this package.
func KindOf(err error) Kind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindGenerationFailed
}
