package render

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UnknownUpdated is shown when the last update time could not be fetched.
const UnknownUpdated = "Unknown"

var updatedMagnitudes = []humanize.RelTimeMagnitude{
	{D: humanize.Day, Format: "Today", DivBy: 1},
	{D: 2 * humanize.Day, Format: "Yesterday", DivBy: 1},
	{D: 7 * humanize.Day, Format: "%d days %s", DivBy: humanize.Day},
	{D: 30 * humanize.Day, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 365 * humanize.Day, Format: "%d months %s", DivBy: 30 * humanize.Day},
}

// FormatUpdated renders the "SDK updated" label relative to now. Times a
// year or more in the past are shown as a date; future times count as today.
func FormatUpdated(t, now time.Time) string {
	if t.IsZero() {
		return UnknownUpdated
	}
	if t.After(now) {
		return "Today"
	}
	if now.Sub(t) >= 365*humanize.Day {
		return t.Format("Jan 2, 2006")
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", updatedMagnitudes)
}

var gameIcons = []struct {
	keys []string
	icon string
}{
	{[]string{"fps", "shooter"}, "🔫"},
	{[]string{"fortnite"}, "🎮"},
	{[]string{"valorant"}, "🎯"},
	{[]string{"apex"}, "🏆"},
	{[]string{"cod", "warzone"}, "💣"},
	{[]string{"test", "dev"}, "🧪"},
}

// GameIcon picks a display icon from keywords in the game name.
func GameIcon(game string) string {
	name := strings.ToLower(game)
	for _, g := range gameIcons {
		for _, k := range g.keys {
			if strings.Contains(name, k) {
				return g.icon
			}
		}
	}
	return "🎮"
}

// CopyNotice is the notification shown after copying value. An empty value
// yields an empty notice since nothing is copied.
func CopyNotice(name, value string) string {
	switch {
	case value == "":
		return ""
	case name != "":
		return "Copied " + name + ": " + value
	default:
		return "Copied: " + value
	}
}
