package feed

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a load failed.
type ErrorKind int

const (
	// KindNetwork covers transport failures and unsuccessful HTTP statuses.
	KindNetwork ErrorKind = iota
	KindParse
	// KindNotFound means no usable slug was given for the article view.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// LoadError is returned by every Loader operation.
type LoadError struct {
	Kind    ErrorKind
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("HTTP %d", e.Status)
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// AsLoadError extracts a *LoadError from err's chain.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// IsNotFound reports whether err is a missing/invalid slug failure.
func IsNotFound(err error) bool {
	le, ok := AsLoadError(err)
	return ok && le.Kind == KindNotFound
}

// MsgMissingSlug is the message of a KindNotFound failure caused by an absent slug.
const MsgMissingSlug = "slug ausente"

// IsMissingSlug reports whether err was caused by a page without a slug.
func IsMissingSlug(err error) bool {
	le, ok := AsLoadError(err)
	return ok && le.Kind == KindNotFound && le.Message == MsgMissingSlug
}
