package services

// extractJSONArray returns the first balanced top-level JSON array literal in
// free-form model text. Completion models wrap their output in prose or
// markdown fences often enough that this has to be a real scanner rather than
// a regexp: brackets inside string literals must not count.
func extractJSONArray(service, text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '[':
			if start < 0 {
				start = i
			}
			depth++
		case ']':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	if start >= 0 {
		return "", &FormatError{
			Service: service,
			Message: "unterminated array literal",
			Snippet: snippet(text),
		}
	}
	return "", &FormatError{
		Service: service,
		Message: "no array literal found",
		Snippet: snippet(text),
	}
}
