package lang

import "strings"

// Tag identifies a recognized language for a wake phrase
type Tag string

const (
	// TagAuto asks the server to detect the language from the phrase text
	TagAuto Tag = "auto"
	// TagEN is English
	TagEN Tag = "en"
	// TagRU is Russian
	TagRU Tag = "ru"
)

// FallbackID is used when normalization of a phrase yields nothing usable
const FallbackID = "wakeword"

// IsKnown reports whether s is a tag the recorder accepts as input
func IsKnown(s string) bool {
	switch Tag(s) {
	case TagAuto, TagEN, TagRU:
		return true
	}
	return false
}

// ruTranslit maps lowercase Cyrillic letters to ASCII digraphs.
// Keep in sync with the identifiers the training script expects.
var ruTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Detect returns TagRU if the text contains any Cyrillic letter, TagEN otherwise.
func Detect(raw string) Tag {
	for _, r := range raw {
		if isCyrillic(r) {
			return TagRU
		}
	}
	return TagEN
}

func isCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё'
}

// SafeName converts an arbitrary phrase into an identifier that is safe to use
// as a filesystem path component: lowercased, Cyrillic transliterated, ASCII
// alphanumerics kept, everything else collapsed to single underscores.
// The result is stable and never empty (FallbackID when nothing survives).
func SafeName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	for _, r := range s {
		switch {
		case isASCIIAlnum(r):
			b.WriteRune(r)
		default:
			if t, ok := ruTranslit[r]; ok {
				b.WriteString(t)
			} else {
				b.WriteByte('_')
			}
		}
	}

	out := collapseUnderscores(b.String())
	if out == "" {
		return FallbackID
	}
	return out
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	prev := false
	for _, r := range s {
		if r == '_' {
			prev = true
			continue
		}
		if prev && b.Len() > 0 {
			b.WriteByte('_')
		}
		prev = false
		b.WriteRune(r)
	}
	return b.String()
}
