package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackmindsinstem/stemset/pkg/normalize"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/similarity"
	"github.com/blackmindsinstem/stemset/pkg/vocab"
)

// Closed set of distinguishing-feature categories, in detector priority
// order. The first category on which the pair differs becomes the
// variation reason.
const (
	ReasonSTEMFields  = "stem_fields"
	ReasonLocation    = "location"
	ReasonSubject     = "subject"
	ReasonTargetGrade = "target_grade"
	ReasonSession     = "session"
)

// detector finds the feature that tells two similar records apart.
type detector struct {
	vocab *vocab.Vocabulary
}

func newDetector(v *vocab.Vocabulary) *detector {
	return &detector{vocab: v}
}

// detect checks the categories in priority order and reports the first
// one on which the two records differ.
func (d *detector) detect(a, b *records.Record, v similarity.Vector) (reason, detail string, found bool) {
	if detail, differ := tagSetsDiffer(a.STEMFields, b.STEMFields); differ {
		return ReasonSTEMFields, detail, true
	}
	if detail, differ := d.keywordsDiffer(d.vocab.Locations, a, b); differ {
		return ReasonLocation, detail, true
	}
	if detail, differ := d.keywordsDiffer(d.vocab.Subjects, a, b); differ {
		return ReasonSubject, detail, true
	}
	if v.GradeCompatible == similarity.GradeMismatch {
		detail := fmt.Sprintf("%q vs %q", normalize.Field(a.TargetGrade), normalize.Field(b.TargetGrade))
		return ReasonTargetGrade, detail, true
	}
	if detail, differ := d.keywordsDiffer(d.vocab.Sessions, a, b); differ {
		return ReasonSession, detail, true
	}
	return "", "", false
}

// keywordsDiffer matches one vocabulary category against the name and
// description of each record and reports whether a keyword appears in one
// record but not the other.
func (d *detector) keywordsDiffer(list []string, a, b *records.Record) (string, bool) {
	hitsA := vocab.Matches(list, a.Name+" "+a.Description)
	hitsB := vocab.Matches(list, b.Name+" "+b.Description)
	return setsDiffer(hitsA, hitsB)
}

// tagSetsDiffer compares the comma-delimited STEM-field tags as sets.
func tagSetsDiffer(a, b string) (string, bool) {
	return setsDiffer(normalize.Tags(a), normalize.Tags(b))
}

// setsDiffer reports whether the two keyword sets are unequal, describing
// the one-sided elements. Two empty sets never differ.
func setsDiffer(a, b []string) (string, bool) {
	setA := toSet(a)
	setB := toSet(b)

	onlyA := minus(setA, setB)
	onlyB := minus(setB, setA)
	if len(onlyA) == 0 && len(onlyB) == 0 {
		return "", false
	}
	return describeDiff(onlyA, onlyB), true
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		set[s] = true
	}
	return set
}

func minus(a, b map[string]bool) []string {
	var out []string
	for s := range a {
		if !b[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func describeDiff(onlyA, onlyB []string) string {
	left := "(none)"
	if len(onlyA) > 0 {
		left = strings.Join(onlyA, ", ")
	}
	right := "(none)"
	if len(onlyB) > 0 {
		right = strings.Join(onlyB, ", ")
	}
	return left + " vs " + right
}
