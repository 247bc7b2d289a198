package rubric

import (
	"fmt"

	"github.com/eduforge/crosscheck/pkg/ai"
)

// ContentType enumerates the kinds of educational content the engine scores.
type ContentType string

const (
	ContentTypePreRead     ContentType = "PRE_READ"
	ContentTypeAssignment  ContentType = "ASSIGNMENT"
	ContentTypeLectureNote ContentType = "LECTURE_NOTE"
)

// Difficulty applies to assignments only.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Criterion is one weighted scoring dimension of a rubric.
type Criterion struct {
	Key         string
	MaxPoints   float64
	Description string
}

// Spec is the named, ordered criterion set for one content type. Criterion
// ceilings always sum to 100.
type Spec struct {
	ContentType ContentType
	Criteria    []Criterion
}

// Limits projects the rubric into the shape the provider adapter validates
// responses against.
func (s Spec) Limits() []ai.CriterionLimit {
	limits := make([]ai.CriterionLimit, 0, len(s.Criteria))
	for _, criterion := range s.Criteria {
		limits = append(limits, ai.CriterionLimit{Key: criterion.Key, Max: criterion.MaxPoints})
	}
	return limits
}

// MaxFor returns the point ceiling for a criterion key, or 0 when unknown.
func (s Spec) MaxFor(key string) float64 {
	for _, criterion := range s.Criteria {
		if criterion.Key == key {
			return criterion.MaxPoints
		}
	}
	return 0
}

var specs = map[ContentType]Spec{
	ContentTypePreRead: {
		ContentType: ContentTypePreRead,
		Criteria: []Criterion{
			{Key: "grammarSpelling", MaxPoints: 10, Description: "Grammar, spelling and punctuation are correct throughout."},
			{Key: "topicRelevance", MaxPoints: 15, Description: "Content stays on the stated topic and matches its scope."},
			{Key: "prerequisiteAlignment", MaxPoints: 10, Description: "Builds only on topics taught so far, without forward references."},
			{Key: "conceptClarity", MaxPoints: 15, Description: "Concepts are introduced clearly with precise definitions."},
			{Key: "engagement", MaxPoints: 10, Description: "Reading is engaging and motivates the upcoming session."},
			{Key: "structureFlow", MaxPoints: 15, Description: "Sections follow a logical order with smooth transitions."},
			{Key: "exampleQuality", MaxPoints: 10, Description: "Examples are relevant, correct and appropriately scoped."},
			{Key: "factualCorrectness", MaxPoints: 15, Description: "All factual claims and technical statements are accurate."},
		},
	},
	ContentTypeAssignment: {
		ContentType: ContentTypeAssignment,
		Criteria: []Criterion{
			{Key: "grammarSpelling", MaxPoints: 10, Description: "Grammar, spelling and punctuation are correct throughout."},
			{Key: "topicRelevance", MaxPoints: 15, Description: "Questions exercise the stated topic and its prerequisites."},
			{Key: "difficultyDistribution", MaxPoints: 20, Description: "Question difficulty matches the declared difficulty level."},
			{Key: "progressiveDifficulty", MaxPoints: 15, Description: "Questions ramp from easier to harder in a sensible order."},
			{Key: "creativityEngagement", MaxPoints: 15, Description: "Problems are creative and grounded in realistic scenarios."},
			{Key: "claritySpecificity", MaxPoints: 15, Description: "Every question states exactly what is expected of the student."},
			{Key: "factualCorrectness", MaxPoints: 10, Description: "Questions and any provided answers are technically accurate."},
		},
	},
	ContentTypeLectureNote: {
		ContentType: ContentTypeLectureNote,
		Criteria: []Criterion{
			{Key: "grammarSpelling", MaxPoints: 10, Description: "Grammar, spelling and punctuation are correct throughout."},
			{Key: "topicRelevance", MaxPoints: 15, Description: "Notes cover the stated topic and match its scope."},
			{Key: "conceptCoverage", MaxPoints: 20, Description: "All key concepts of the topic are covered at adequate depth."},
			{Key: "logicalFlow", MaxPoints: 15, Description: "Material progresses logically from fundamentals to detail."},
			{Key: "exampleQuality", MaxPoints: 15, Description: "Worked examples are correct, relevant and well explained."},
			{Key: "visualAids", MaxPoints: 10, Description: "Diagrams, tables or code blocks support the prose where useful."},
			{Key: "factualCorrectness", MaxPoints: 15, Description: "All factual claims and technical statements are accurate."},
		},
	},
}

// SpecFor returns the active rubric for a content type.
func SpecFor(contentType ContentType) (Spec, error) {
	spec, ok := specs[contentType]
	if !ok {
		return Spec{}, fmt.Errorf("no rubric for content type %q", contentType)
	}
	return spec, nil
}
