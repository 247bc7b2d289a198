package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEveryRubricSumsToOneHundred(t *testing.T) {
	for _, contentType := range []ContentType{ContentTypePreRead, ContentTypeAssignment, ContentTypeLectureNote} {
		spec, err := SpecFor(contentType)
		require.NoError(t, err)

		total := 0.0
		for _, criterion := range spec.Criteria {
			total += criterion.MaxPoints
		}
		require.Equal(t, 100.0, total, "rubric for %s must sum to 100", contentType)
	}
}

func TestCriterionCounts(t *testing.T) {
	preRead, _ := SpecFor(ContentTypePreRead)
	assignment, _ := SpecFor(ContentTypeAssignment)
	lectureNote, _ := SpecFor(ContentTypeLectureNote)

	require.Len(t, preRead.Criteria, 8)
	require.Len(t, assignment.Criteria, 7)
	require.Len(t, lectureNote.Criteria, 7)
}

func TestAssignmentWireContractKeys(t *testing.T) {
	spec, err := SpecFor(ContentTypeAssignment)
	require.NoError(t, err)

	expected := map[string]float64{
		"grammarSpelling":        10,
		"topicRelevance":         15,
		"difficultyDistribution": 20,
		"progressiveDifficulty":  15,
		"creativityEngagement":   15,
		"claritySpecificity":     15,
		"factualCorrectness":     10,
	}
	for key, max := range expected {
		require.Equal(t, max, spec.MaxFor(key), "ceiling for %s", key)
	}
}

func TestLimitsPreserveCriterionOrder(t *testing.T) {
	spec, err := SpecFor(ContentTypePreRead)
	require.NoError(t, err)

	limits := spec.Limits()
	require.Len(t, limits, len(spec.Criteria))
	for i, criterion := range spec.Criteria {
		require.Equal(t, criterion.Key, limits[i].Key)
		require.Equal(t, criterion.MaxPoints, limits[i].Max)
	}
}

func TestSpecForUnknownContentType(t *testing.T) {
	_, err := SpecFor(ContentType("QUIZ"))
	require.Error(t, err)
}
