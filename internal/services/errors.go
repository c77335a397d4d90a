package services

// UpstreamError represents a dependency that is unreachable or returned a
// non-retryable failure.
type UpstreamError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

func (e *UpstreamError) Error() string {
	msg := e.Service + " " + e.Operation + " failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// FormatError represents a response that could not be parsed into the
// expected shape.
type FormatError struct {
	Service string
	Message string
	Snippet string
	Err     error
}

func (e *FormatError) Error() string {
	msg := e.Service + " returned an unparseable response"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Snippet != "" {
		msg += " (response: " + e.Snippet + ")"
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// snippet truncates raw response text for error messages
func snippet(text string) string {
	const maxLen = 80
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
