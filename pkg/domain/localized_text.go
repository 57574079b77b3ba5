package domain

import "strings"

// LocalizedText holds one string per supported language. German is the
// reference slot: blank fr/it/en slots fall back to de, never the reverse.
type LocalizedText struct {
	DE string `json:"de"`
	FR string `json:"fr,omitempty"`
	IT string `json:"it,omitempty"`
	EN string `json:"en,omitempty"`
}

// LocalizedTextOf uses the same text for every language.
func LocalizedTextOf(text string) LocalizedText {
	return LocalizedText{DE: text, FR: text, IT: text, EN: text}
}

// Get returns the text for lang, falling back to German when that slot is blank.
func (t LocalizedText) Get(lang Language) string {
	var v string
	switch lang {
	case LanguageFR:
		v = t.FR
	case LanguageIT:
		v = t.IT
	case LanguageEN:
		v = t.EN
	default:
		return t.DE
	}
	if isBlank(v) {
		return t.DE
	}
	return v
}

// IsBlank reports whether every slot is blank.
func (t LocalizedText) IsBlank() bool {
	return isBlank(t.DE) && isBlank(t.FR) && isBlank(t.IT) && isBlank(t.EN)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
