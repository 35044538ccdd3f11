package ui

// Status symbols printed at the start of result lines.
const (
	CheckMark = "✓"
	Cross     = "✗"
	Caution   = "⚠"
	Arrow     = "→"
)

// SuccessLine returns msg prefixed with a green check mark and a trailing newline.
func SuccessLine(msg string) string {
	return EnsureNewline(Success.Sprint(CheckMark) + " " + msg)
}

// ErrorLine returns msg prefixed with a red cross and a trailing newline.
func ErrorLine(msg string) string {
	return EnsureNewline(Error.Sprint(Cross) + " " + msg)
}

// WarningLine returns msg prefixed with a warning sign and a trailing newline.
func WarningLine(msg string) string {
	return EnsureNewline(Warning.Sprint(Caution) + " " + msg)
}

// HintLine returns an indented hint line, used below errors to suggest a fix.
func HintLine(msg string) string {
	return EnsureNewline("  " + Info.Sprint(Arrow) + " " + msg)
}
