package ui

// Prompt is the shell's fixed interactive prompt (spec: prompt "$ "). Colored
// with the current theme, but the rendered text always begins with "$ " once
// ANSI escapes are stripped, so scripted/non-interactive callers can rely on
// it.
func Prompt() string {
	return PromptStyle.Render("$") + " "
}

// InterruptMarker is printed when a read is interrupted (Ctrl-C).
func InterruptMarker() string {
	return "CTRL-C"
}

// EOFMarker is printed when input ends (Ctrl-D).
func EOFMarker() string {
	return "CTRL-D"
}
