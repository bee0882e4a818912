package i18n

import "golang.org/x/text/language"

// Lang is a supported user-facing language.
type Lang string

const (
	EN Lang = "en"
	TH Lang = "th"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Thai,
})

// Detect picks a language from an Accept-Language header, defaulting to EN.
func Detect(acceptLanguage string) Lang {
	if acceptLanguage == "" {
		return EN
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return EN
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return EN
	}
	if idx == 1 {
		return TH
	}
	return EN
}

// ParseLang parses a stored language string, defaulting to EN.
func ParseLang(s string) Lang {
	if Lang(s) == TH {
		return TH
	}
	return EN
}
