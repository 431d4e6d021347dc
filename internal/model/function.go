package model

// ExtractedFunction is a function found in a script by line-prefix scanning.
// Line numbers are 0-based and inclusive.
type ExtractedFunction struct {
	Name      string
	StartLine int
	EndLine   int
	// RawText is the def line plus the body, newline-joined.
	RawText string
}

// LineCount returns the number of source lines the function spans.
func (f ExtractedFunction) LineCount() int {
	return f.EndLine - f.StartLine + 1
}
