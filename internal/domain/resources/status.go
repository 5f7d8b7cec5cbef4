package resources

import "fmt"

// PublicationStatus is the lifecycle flag of a stored resource record
type PublicationStatus string

// Publication status values
const (
	StatusInternal   PublicationStatus = "i"
	StatusIngested   PublicationStatus = "g"
	StatusProcessing PublicationStatus = "r"
	StatusError      PublicationStatus = "e"
	StatusPublished  PublicationStatus = "p"
)

// DefaultPublicationStatus is assigned to new records
const DefaultPublicationStatus = StatusInternal

var statusLabels = map[PublicationStatus]string{
	StatusInternal:   "internal",
	StatusIngested:   "ingested",
	StatusProcessing: "processing",
	StatusError:      "error",
	StatusPublished:  "published",
}

var allowedTransitions = map[PublicationStatus][]PublicationStatus{
	StatusInternal:   {StatusIngested, StatusProcessing},
	StatusIngested:   {StatusProcessing, StatusPublished},
	StatusProcessing: {StatusIngested, StatusError, StatusPublished},
	StatusError:      {StatusInternal, StatusProcessing},
	StatusPublished:  {StatusInternal, StatusIngested},
}

// ParsePublicationStatus accepts either the single-character code or the label
func ParsePublicationStatus(s string) (PublicationStatus, error) {
	if _, ok := statusLabels[PublicationStatus(s)]; ok {
		return PublicationStatus(s), nil
	}
	for code, label := range statusLabels {
		if label == s {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown publication status %q", s)
}

// Label returns the human readable name of the status
func (s PublicationStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unknown"
}

// Valid reports whether s is one of the five known codes
func (s PublicationStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// CanTransitionTo reports whether a record in status s may move to next.
// Staying in the same status is always allowed.
func (s PublicationStatus) CanTransitionTo(next PublicationStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
