package model

// Severity levels of a transient notice.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notice is a dismissible message shown once after an action.
type Notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func SuccessNotice(msg string) Notice {
	return Notice{Severity: SeveritySuccess, Message: msg}
}

func ErrorNotice(msg string) Notice {
	return Notice{Severity: SeverityError, Message: msg}
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Message == ""
}
