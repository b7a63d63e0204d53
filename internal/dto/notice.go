package dto

// NoticeDismissAfterMs is how long a notice stays on screen.
const NoticeDismissAfterMs = 4000

// Notice levels.
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is a transient, auto-dismissing notification attached to a view model.
type Notice struct {
	Level          string `json:"level"`
	Message        string `json:"message"`
	DismissAfterMs int    `json:"dismiss_after_ms"`
}

// NewNotice creates a notice with the default dismiss delay.
func NewNotice(level, message string) Notice {
	return Notice{Level: level, Message: message, DismissAfterMs: NoticeDismissAfterMs}
}

// Notices is embedded by every page view model.
type Notices struct {
	Notices []Notice `json:"notices"`
}

// Add appends a notice.
func (n *Notices) Add(level, message string) {
	n.Notices = append(n.Notices, NewNotice(level, message))
}

// Ensure replaces a nil slice with an empty one so the JSON is always an array.
func (n *Notices) Ensure() {
	if n.Notices == nil {
		n.Notices = []Notice{}
	}
}
