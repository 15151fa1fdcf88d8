package action

type ActionError string

func (e ActionError) Error() string {
	return string(e)
}

const (
	// ErrOptionParse is returned when a required option is missing or malformed. No
	// commands are produced.
	ErrOptionParse = ActionError("option could not be parsed")

	// ErrInternalConsistency is returned for identifiers or styles the dispatcher does not
	// recognise, which only happens if the catalog and dispatcher disagree.
	ErrInternalConsistency = ActionError("internal consistency failure")
)
