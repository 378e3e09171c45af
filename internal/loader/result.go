package loader

import (
	"fmt"

	"holdings/internal/models"
)

type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is returned inside a Failure. Callers that need the cause use errors.As.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is either a Success or a Failure.
type Result interface {
	isResult()
}

type Success struct {
	Holdings []models.EnrichedHolding
	Totals   models.Totals
}

type Failure struct {
	Err *Error
}

func (Success) isResult() {}
func (Failure) isResult() {}

func fail(kind ErrorKind, err error) Failure {
	return Failure{Err: &Error{Kind: kind, Err: err}}
}
