package profile

import "fmt"

// LanguageCode identifies one of the supported output languages for
// generated documents.
type LanguageCode string

const (
	LanguageEnglish    LanguageCode = "en"
	LanguageFrench     LanguageCode = "fr"
	LanguageGerman     LanguageCode = "de"
	LanguageSpanish    LanguageCode = "es"
	LanguageItalian    LanguageCode = "it"
	LanguagePortuguese LanguageCode = "pt"
	LanguageLatin      LanguageCode = "la"
)

var languages = map[LanguageCode]string{
	LanguageEnglish:    "English",
	LanguageFrench:     "French",
	LanguageGerman:     "German",
	LanguageSpanish:    "Spanish",
	LanguageItalian:    "Italian",
	LanguagePortuguese: "Portuguese",
	LanguageLatin:      "Latin",
}

// LanguageName resolves a code into its display name for prompting.
func LanguageName(code LanguageCode) (string, error) {
	name, ok := languages[code]
	if !ok {
		return "", fmt.Errorf("unsupported language code: %s", code)
	}

	return name, nil
}

// DocumentStyle is the tone the generated documents are written in.
type DocumentStyle string

const (
	StyleProfessional DocumentStyle = "professional"
	StyleCreative     DocumentStyle = "creative"
	StyleModern       DocumentStyle = "modern"
)

func ValidateStyle(style DocumentStyle) error {
	switch style {
	case StyleProfessional, StyleCreative, StyleModern:
		return nil
	default:
		return fmt.Errorf("unsupported document style: %s", style)
	}
}
