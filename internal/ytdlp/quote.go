package ytdlp

import (
	"regexp"
	"strings"
)

var unsafeShellChars = regexp.MustCompile(`[^\w@%+=:,./-]`)

// ShellQuote returns a POSIX shell-escaped version of s.
//
// yt-dlp splits --postprocessor-args with shell rules, so artist and title
// values must be quoted before they are embedded in that argument.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeShellChars.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
