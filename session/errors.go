package session

type SessionError string

func (e SessionError) Error() string {
	return string(e)
}

const (
	ErrActionNotAvailable = SessionError("action not available for this model")
	ErrUnknownSession     = SessionError("unknown session")
)
