package scan

// Status enumerates the states of one scan cycle.
//
// A cycle moves Idle → Capturing → Recognizing and ends in NoPriceFound,
// Converted or Error. The two non-error terminal states revert to Idle after
// the configured display delay; Error stays until the user triggers a new
// scan, so failures cannot be missed.
type Status int

const (
	StatusIdle Status = iota
	StatusCapturing
	StatusRecognizing
	StatusNoPriceFound
	StatusConverted
	StatusError
)

// String returns the lowercase state name, used in logs and metric labels.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCapturing:
		return "capturing"
	case StatusRecognizing:
		return "recognizing"
	case StatusNoPriceFound:
		return "no_price_found"
	case StatusConverted:
		return "converted"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a scan cycle.
func (s Status) Terminal() bool {
	return s == StatusNoPriceFound || s == StatusConverted || s == StatusError
}

// Update is a status change surfaced to the caller, typically bound to a
// status line in the UI. Message is human-readable and already localized to
// the audience of the status line (English).
type Update struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}
