package biz

import (
	"regexp"

	"clinictriage/cmd/triage-service/internal/domain"
)

// EntityExtractor pulls structured references out of the raw message text.
// Patterns carry their own case-insensitivity so captures keep the user's
// original casing.
type EntityExtractor struct {
	lib *PatternLibrary
}

func NewEntityExtractor(lib *PatternLibrary) *EntityExtractor {
	return &EntityExtractor{lib: lib}
}

// Extract runs every pattern of every entity category against the text.
// Doctors and services keep only the captures of the latest matching
// pattern (last-match-wins); the remaining categories append every capture
// in pattern scan order, duplicates included. An empty bag is valid output
// and extraction is idempotent.
//
// clinicID is accepted for future per-clinic pattern scoping and does not
// filter anything yet.
func (e *EntityExtractor) Extract(text string, clinicID string) *domain.EntityBag {
	bag := domain.NewEntityBag()
	if text == "" {
		return bag
	}

	for _, pattern := range e.lib.DoctorPatterns {
		if refs := captureRefs(pattern, text); len(refs) > 0 {
			bag.Doctors = refs
		}
	}
	for _, pattern := range e.lib.ServicePatterns {
		if refs := captureRefs(pattern, text); len(refs) > 0 {
			bag.Services = refs
		}
	}

	bag.Dates = appendCaptures(bag.Dates, e.lib.DatePatterns, text)
	bag.Times = appendCaptures(bag.Times, e.lib.TimePatterns, text)
	bag.Symptoms = appendCaptures(bag.Symptoms, e.lib.SymptomPatterns, text)
	bag.Locations = appendCaptures(bag.Locations, e.lib.LocationPatterns, text)
	bag.Medications = appendCaptures(bag.Medications, e.lib.MedicationPatterns, text)

	return bag
}

// captureRefs collects all first-group captures of one pattern as entity
// references.
func captureRefs(pattern *regexp.Regexp, text string) []domain.EntityRef {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]domain.EntityRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, domain.EntityRef{Name: captureOf(m)})
	}
	return refs
}

// appendCaptures appends every capture of every pattern to the list.
func appendCaptures(dst []string, patterns []*regexp.Regexp, text string) []string {
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			dst = append(dst, captureOf(m))
		}
	}
	return dst
}

// captureOf returns the first non-empty capture group, falling back to the
// whole match for patterns without groups.
func captureOf(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return m[0]
}
