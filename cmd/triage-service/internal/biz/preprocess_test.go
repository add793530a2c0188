package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinictriage/cmd/triage-service/internal/domain"
)

func TestPreprocessor_Normalize(t *testing.T) {
	pre := NewPreprocessor(DefaultPatternLibrary())

	testCases := []struct {
		name       string
		raw        string
		wantText   string
		wantTokens []string
	}{
		{
			name:       "collapses whitespace runs",
			raw:        "  I   need \t an\nappointment  ",
			wantText:   "I need an appointment",
			wantTokens: []string{"i", "need", "an", "appointment"},
		},
		{
			name:       "empty input stays empty",
			raw:        "   ",
			wantText:   "",
			wantTokens: []string{},
		},
		{
			name:       "single word",
			raw:        "Hello",
			wantText:   "Hello",
			wantTokens: []string{"hello"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := pre.Normalize(tc.raw, "")
			assert.Equal(t, tc.wantText, msg.Text)
			assert.ElementsMatch(t, tc.wantTokens, msg.Tokens)
		})
	}
}

func TestPreprocessor_LanguageDetection(t *testing.T) {
	pre := NewPreprocessor(DefaultPatternLibrary())

	testCases := []struct {
		name string
		raw  string
		want domain.Language
	}{
		{name: "english defaults to base locale", raw: "I want to book an appointment", want: domain.LanguageEnglish},
		{name: "chinese marker", raw: "你好，我想预约", want: domain.LanguageChinese},
		{name: "malay marker token", raw: "selamat pagi, boleh saya buat temujanji", want: domain.LanguageMalay},
		{name: "no marker falls back", raw: "xyzzy", want: domain.LanguageEnglish},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := pre.Normalize(tc.raw, "")
			assert.Equal(t, tc.want, msg.Language)
		})
	}
}

func TestPreprocessor_LanguageOverride(t *testing.T) {
	pre := NewPreprocessor(DefaultPatternLibrary())

	msg := pre.Normalize("你好", domain.LanguageEnglish)
	assert.Equal(t, domain.LanguageEnglish, msg.Language, "override must win over detection")
}
