package trigger

import (
	"net/url"
	"strings"
)

// Triggers is the trigger configuration attached to an agent
type Triggers struct {
	YouTubeChannels []string
	CallbackURL     string
}

// ParseChannels splits a comma-separated list of YouTube channel
// references, dropping empty entries and surrounding whitespace
func ParseChannels(s string) []string {
	var channels []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			channels = append(channels, trimmed)
		}
	}
	return channels
}

// ValidChannelRef reports whether ref resembles a YouTube channel
// reference: a channel ID (UC + 22 characters), a youtube.com/youtu.be
// URL, or an @handle. Unrecognized references are worth a warning but the
// platform has the final say, so this is advisory, not a hard check.
func ValidChannelRef(ref string) bool {
	if strings.HasPrefix(ref, "UC") && len(ref) == 24 {
		return true
	}
	if strings.Contains(ref, "youtube.com") || strings.Contains(ref, "youtu.be") {
		return true
	}
	return strings.HasPrefix(ref, "@")
}

// ValidCallbackURL reports whether raw is an http or https URL with a host
func ValidCallbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
