package similarity_test

import (
	"testing"

	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/similarity"
)

func newScorer(t *testing.T) *similarity.Scorer {
	t.Helper()
	s, err := similarity.NewScorer()
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	return s
}

func TestLevenshteinRatio(t *testing.T) {
	m := similarity.NewLevenshteinMetric()

	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "code quest", "code quest", 100},
		{"both empty", "", "", 100},
		{"one empty", "", "robotics", 0},
		{"disjoint", "abcd", "wxyz", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Ratio(tc.a, tc.b); got != tc.want {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}

	// One substitution in ten characters scores 90.
	if got := m.Ratio("code quest", "code quesx"); got != 90 {
		t.Errorf("single-edit ratio = %v, want 90", got)
	}
}

func TestRatioSymmetry(t *testing.T) {
	m := similarity.NewLevenshteinMetric()
	pairs := [][2]string{
		{"ai4all @ stanford", "ai4all @ mit"},
		{"summer science program", "summer science program session 2"},
		{"", "robotics"},
		{"café", "cafe"},
	}
	for _, p := range pairs {
		if m.Ratio(p[0], p[1]) != m.Ratio(p[1], p[0]) {
			t.Errorf("Ratio not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestScoreNormalizesBeforeComparing(t *testing.T) {
	s := newScorer(t)

	a := &records.Record{Name: "Code Quest", Description: "Learn to code."}
	b := &records.Record{Name: "  code   QUEST ", Description: "Learn to code.  \n"}

	v := s.Score(a, b)
	if v.NameSimilarity != 100 {
		t.Errorf("NameSimilarity = %v, want 100", v.NameSimilarity)
	}
	if v.DescriptionSimilarity != 100 {
		t.Errorf("DescriptionSimilarity = %v, want 100", v.DescriptionSimilarity)
	}
}

func TestScoreDescriptionEmptyConventions(t *testing.T) {
	s := newScorer(t)

	bothEmpty := s.Score(&records.Record{Name: "a"}, &records.Record{Name: "a"})
	if bothEmpty.DescriptionSimilarity != 100 {
		t.Errorf("empty-vs-empty description = %v, want 100", bothEmpty.DescriptionSimilarity)
	}

	oneEmpty := s.Score(
		&records.Record{Name: "a", Description: "a long description"},
		&records.Record{Name: "a"},
	)
	if oneEmpty.DescriptionSimilarity != 0 {
		t.Errorf("empty-vs-nonempty description = %v, want 0", oneEmpty.DescriptionSimilarity)
	}
}

func TestScoreURLEquality(t *testing.T) {
	s := newScorer(t)

	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "https://x.org/a", "https://x.org/a", true},
		{"case and space", " HTTPS://X.ORG/A ", "https://x.org/a", true},
		{"different", "https://x.org/a", "https://x.org/b", false},
		{"both empty are not equal", "", "", false},
		{"one empty", "https://x.org/a", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := s.Score(&records.Record{Name: "n", URL: tc.a}, &records.Record{Name: "n", URL: tc.b})
			if v.URLEqual != tc.want {
				t.Errorf("URLEqual = %v, want %v", v.URLEqual, tc.want)
			}
		})
	}
}

func TestScoreGradeCompatibility(t *testing.T) {
	s := newScorer(t)

	cases := []struct {
		name string
		a, b string
		want similarity.GradeCompat
	}{
		{"identical", "9-12", "9-12", similarity.GradeMatch},
		{"normalized match", " 9-12 ", "9-12", similarity.GradeMatch},
		{"exact text only", "9-12", "9", similarity.GradeMismatch},
		{"one empty", "9-12", "", similarity.GradeUnknown},
		{"both empty", "", "", similarity.GradeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := s.Score(
				&records.Record{Name: "n", TargetGrade: tc.a},
				&records.Record{Name: "n", TargetGrade: tc.b},
			)
			if v.GradeCompatible != tc.want {
				t.Errorf("GradeCompatible = %v, want %v", v.GradeCompatible, tc.want)
			}
		})
	}
}

func TestGradeCompatStates(t *testing.T) {
	if !similarity.GradeMatch.Compatible() || !similarity.GradeUnknown.Compatible() {
		t.Error("match and unknown must not disqualify a duplicate")
	}
	if similarity.GradeMismatch.Compatible() {
		t.Error("mismatch must disqualify a duplicate")
	}
	if similarity.GradeUnknown.String() != "unknown" ||
		similarity.GradeMatch.String() != "true" ||
		similarity.GradeMismatch.String() != "false" {
		t.Error("unexpected GradeCompat string forms")
	}
}

func TestScoreVectorSymmetry(t *testing.T) {
	s := newScorer(t)

	a := &records.Record{
		Name:        "AI4ALL @ Stanford",
		Description: "Summer AI program",
		URL:         "https://ai4all.org",
		TargetGrade: "9-12",
	}
	b := &records.Record{
		Name:        "AI4ALL @ MIT",
		Description: "Summer AI program at MIT",
		TargetGrade: "10-12",
	}

	ab := s.Score(a, b)
	ba := s.Score(b, a)
	if ab != ba {
		t.Errorf("Score not symmetric: %+v vs %+v", ab, ba)
	}
}
