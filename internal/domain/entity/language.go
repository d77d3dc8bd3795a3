package entity

// Language selects which localized text fields are rendered.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage maps a request language tag to a Language. Only the exact tag "ar"
// selects Arabic; everything else, including an empty tag, is English.
func ParseLanguage(tag string) Language {
	if tag == string(LanguageArabic) {
		return LanguageArabic
	}
	return LanguageEnglish
}

// Pick returns ar for Arabic and en otherwise.
func (l Language) Pick(ar, en string) string {
	if l == LanguageArabic {
		return ar
	}
	return en
}
