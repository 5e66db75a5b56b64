package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blackmindsinstem/stemset/pkg/normalize"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/vocab"
)

var titleCaser = cases.Title(language.English)

// Features lists everything that makes a record variation distinct:
// matched subject keywords, a location extracted from the name, grade
// phrases, session keywords, and the record's own STEM-field tags. The
// report layer prints these next to preserved variations; the classifier
// itself only ever uses the pairwise detector.
func Features(v *vocab.Vocabulary, r *records.Record) []string {
	var features []string
	text := r.Name + " " + r.Description

	for _, subject := range vocab.Matches(v.Subjects, text) {
		features = append(features, "Subject: "+titleCaser.String(subject))
	}

	if loc := locationFromName(r.Name); loc != "" {
		features = append(features, "Location: "+titleCaser.String(loc))
	}

	for _, grade := range vocab.Matches(v.Grades, text) {
		features = append(features, "Grade: "+titleCaser.String(grade))
	}

	for _, session := range vocab.Matches(v.Sessions, r.Name) {
		features = append(features, "Session: "+titleCaser.String(session))
	}

	if tags := normalize.Tags(r.STEMFields); len(tags) > 0 {
		features = append(features, "Field: "+strings.Join(tags, ", "))
	}

	return features
}

// locationFromName pulls the campus out of names like "AI4ALL @ Stanford"
// or "RISE at MIT".
func locationFromName(name string) string {
	if idx := strings.LastIndex(name, "@"); idx >= 0 {
		return normalize.Field(name[idx+1:])
	}
	lower := normalize.Field(name)
	if idx := strings.LastIndex(lower, " at "); idx >= 0 {
		return strings.TrimSpace(lower[idx+len(" at "):])
	}
	return ""
}

// FamilyOf reports the parent program family of a record, or "" when it
// matches no known family.
func (c *Classifier) FamilyOf(r *records.Record) string {
	return c.detector.vocab.FamilyOf(r.Name, r.Description)
}

// Features lists the distinguishing features of a record using the
// classifier's configured vocabulary.
func (c *Classifier) Features(r *records.Record) []string {
	return Features(c.detector.vocab, r)
}
