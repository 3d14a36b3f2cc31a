package model

import "strings"

// TitleSeparator splits "<artist> - <title>" display names.
const TitleSeparator = " - "

// ParseTitle derives (artist, title) from a free-text display name.
//
// If name contains TitleSeparator, it is split on the first occurrence only and
// both sides are trimmed. Otherwise artist is empty and title is the trimmed
// input. ParseTitle is total: every string, including "", has a result.
//
// Example:
//
//	ParseTitle("Artist X - Song Y")         // "Artist X", "Song Y"
//	ParseTitle("Artist - Song - Remix")     // "Artist", "Song - Remix"
//	ParseTitle("  Just a title ")           // "", "Just a title"
func ParseTitle(name string) (artist, title string) {
	left, right, found := strings.Cut(name, TitleSeparator)
	if !found {
		return "", strings.TrimSpace(name)
	}
	return strings.TrimSpace(left), strings.TrimSpace(right)
}
