// Package normalize cleans up language identifiers that come from
// configuration before they reach the catalog.
package normalize

import (
	"strings"

	"golang.org/x/text/language"
)

// languageNames maps the English names operators tend to type to ISO 639-1 codes.
var languageNames = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "dutch": "nl", "russian": "ru",
	"japanese": "ja", "chinese": "zh", "mandarin": "zh", "korean": "ko",
	"swedish": "sv", "norwegian": "no", "danish": "da", "finnish": "fi",
	"polish": "pl", "turkish": "tr", "hindi": "hi", "arabic": "ar",
}

// LanguageCode converts various language representations to ISO 639-1 codes.
// It handles:
//   - ISO 639-1 codes: "en" -> "en"
//   - ISO 639-2 codes: "eng", "ger" -> "en", "de"
//   - Locale tags: "en-US", "en_GB" -> "en"
//   - Common English names: "Finnish" -> "fi"
//
// Returns empty string for unrecognized values and for languages without a
// two-letter code.
func LanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if code, ok := languageNames[s]; ok {
		return code
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil || tag == language.Und {
		return ""
	}

	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}

	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}

// LanguageCodes normalizes a comma separated list, dropping unrecognized and
// repeated entries while keeping the first-seen order.
func LanguageCodes(list string) []string {
	var codes []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(list, ",") {
		code := LanguageCode(part)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}
