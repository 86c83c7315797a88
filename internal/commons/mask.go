package commons

import "strings"

const maskKeepLast = 4

// MaskIdentifier hides all but the last keepLast characters of a
// sensitive identifier. Identifiers at or below keepLast characters are
// fully masked; blank input stays blank.
func MaskIdentifier(identifier string, keepLast int) string {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return ""
	}

	runes := []rune(trimmed)
	if len(runes) <= keepLast {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-keepLast) + string(runes[len(runes)-keepLast:])
}

// MaskNationalID masks a national identifier for display in memos,
// logs and API responses, keeping only the last four characters.
func MaskNationalID(nationalID string) string {
	return MaskIdentifier(nationalID, maskKeepLast)
}
