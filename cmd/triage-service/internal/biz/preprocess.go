package biz

import (
	"strings"

	"clinictriage/cmd/triage-service/internal/domain"
)

// Preprocessor turns a raw inbound message into the normalized form shared
// by every analyzer. It is pure and total: any input string, including the
// empty one, produces a valid NormalizedMessage.
type Preprocessor struct {
	lib *PatternLibrary
}

func NewPreprocessor(lib *PatternLibrary) *Preprocessor {
	return &Preprocessor{lib: lib}
}

// Normalize trims the message, collapses whitespace runs, tokenizes and
// detects the language. A non-empty override skips detection.
func (p *Preprocessor) Normalize(raw string, override domain.Language) domain.NormalizedMessage {
	text := strings.Join(strings.Fields(raw), " ")

	tokens := strings.Fields(strings.ToLower(text))

	lang := override
	if lang == "" {
		lang = p.detectLanguage(text, tokens)
	}

	return domain.NormalizedMessage{
		Text:     text,
		Tokens:   tokens,
		Language: lang,
	}
}

// detectLanguage tests membership of per-locale marker words and falls
// back to the base locale when nothing matches. Chinese and Tamil markers
// are checked by containment because those scripts carry no whitespace
// word boundaries; Malay markers are checked against the token list.
func (p *Preprocessor) detectLanguage(text string, tokens []string) domain.Language {
	lowered := strings.ToLower(text)

	for _, lang := range []domain.Language{domain.LanguageChinese, domain.LanguageTamil} {
		for _, marker := range p.lib.LanguageMarkers[lang] {
			if strings.Contains(lowered, marker) {
				return lang
			}
		}
	}

	for _, marker := range p.lib.LanguageMarkers[domain.LanguageMalay] {
		for _, token := range tokens {
			if token == marker {
				return domain.LanguageMalay
			}
		}
	}

	return domain.DefaultLanguage
}
