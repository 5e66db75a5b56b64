package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/vocab"
)

func TestFeatures(t *testing.T) {
	v := vocab.Default()

	t.Run("subject and location", func(t *testing.T) {
		got := classify.Features(v, &records.Record{
			Name:        "AI4ALL @ Stanford",
			Description: "A machine learning intensive for high school students.",
		})
		assert.Contains(t, got, "Subject: Machine Learning")
		assert.Contains(t, got, "Location: Stanford")
		assert.Contains(t, got, "Grade: High School")
	})

	t.Run("at-style location", func(t *testing.T) {
		got := classify.Features(v, &records.Record{Name: "RISE at Boston University"})
		assert.Contains(t, got, "Location: Boston University")
	})

	t.Run("stem field tags", func(t *testing.T) {
		got := classify.Features(v, &records.Record{
			Name:       "Code Quest",
			STEMFields: "Robotics, AI",
		})
		assert.Contains(t, got, "Field: robotics, ai")
	})

	t.Run("no features", func(t *testing.T) {
		got := classify.Features(v, &records.Record{Name: "Local Club"})
		assert.Empty(t, got)
	})
}

func TestClassifierFamilyOf(t *testing.T) {
	c := newClassifier(t)
	family := c.FamilyOf(&records.Record{Name: "AI4ALL @ Stanford"})
	assert.Equal(t, "AI4ALL", family)

	assert.Equal(t, "", c.FamilyOf(&records.Record{Name: "Local Club"}))
}
