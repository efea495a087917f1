package utils

import (
	"net/url"
)

// DefaultAvatarURL avatar SVG généré avec les initiales (DiceBear)
func DefaultAvatarURL(userName string) string {
	return "https://api.dicebear.com/7.x/initials/svg?seed=" + url.QueryEscape(userName)
}
