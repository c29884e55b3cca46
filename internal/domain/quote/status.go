package quote

// Status represents the lifecycle state of a quote
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// Expired quotes may be re-issued (expired -> sent); accepted and rejected
// are terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusSent
	case StatusSent:
		return target == StatusAccepted || target == StatusRejected || target == StatusExpired
	case StatusExpired:
		return target == StatusSent
	case StatusAccepted, StatusRejected:
		return false
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}
