package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled is switched off by --no-color
var EmojiEnabled = true

var emojiSupport = detectEmojiSupport()

// detectEmojiSupport guesses if the terminal can render emojis. Everything
// but the classic windows console (cmd, powershell) usually can
func detectEmojiSupport() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if runtime.GOOS != "windows" {
		return true
	}
	// windows terminal does not set SESSIONNAME, the old console does
	return os.Getenv("SESSIONNAME") == "" || os.Getenv("WT_SESSION") != ""
}

// Emoji returns e (usually an emoji followed by a space) if the current
// terminal (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
