package client

import (
	"errors"
	"fmt"
)

// Kind tags a failed write or auth call.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindAuthRejected
	KindVersionRejected
	KindDeleteFailed
	KindCredentials
	KindUnexpectedStatus
	KindDecode
)

var (
	ErrTransport        = errors.New("server unreachable")
	ErrAuthRejected     = errors.New("session rejected")
	ErrVersionRejected  = errors.New("client version rejected")
	ErrDeleteFailed     = errors.New("delete failed")
	ErrCredentials      = errors.New("invalid credentials")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("undecodable response")
)

var kindSentinels = map[Kind]error{
	KindTransport:        ErrTransport,
	KindAuthRejected:     ErrAuthRejected,
	KindVersionRejected:  ErrVersionRejected,
	KindDeleteFailed:     ErrDeleteFailed,
	KindCredentials:      ErrCredentials,
	KindUnexpectedStatus: ErrUnexpectedStatus,
	KindDecode:           ErrDecode,
}

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthRejected:
		return "auth_rejected"
	case KindVersionRejected:
		return "version_rejected"
	case KindDeleteFailed:
		return "delete_failed"
	case KindCredentials:
		return "credentials"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the tagged failure returned by writes and auth calls. Status is
// the HTTP status when a response was received, 0 otherwise. Detail carries
// the server's message when it sent one.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if s, ok := kindSentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a tagged error, or 0 when err is not one.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
