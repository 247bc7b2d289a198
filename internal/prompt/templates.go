package prompt

import "github.com/eduforge/crosscheck/internal/rubric"

func defaultTemplate(contentType rubric.ContentType) string {
	switch contentType {
	case rubric.ContentTypeAssignment:
		return assignmentTemplate
	case rubric.ContentTypeLectureNote:
		return lectureNoteTemplate
	default:
		return preReadTemplate
	}
}

const preReadTemplate = `Evaluate the following pre-read material prepared for the topic "[TOPIC]".

Students have been taught the following topics so far: [TOPICS_TAUGHT_SO_FAR].
The pre-read is sent before the session, so it must rely only on those topics.

Authoring guidelines in effect:
[GUIDELINES]

Score the content against this rubric:
[RUBRIC]

Respond with only a single JSON object of exactly this shape:
[OUTPUT_CONTRACT]

Content to evaluate:
-----BEGIN CONTENT-----
[CONTENT]
-----END CONTENT-----`

const assignmentTemplate = `Evaluate the following assignment prepared for the topic "[TOPIC]".

Students have been taught the following topics so far: [TOPICS_TAUGHT_SO_FAR].
The assignment is declared as [DIFFICULTY] difficulty; judge the difficulty
criteria against that declaration.

Authoring guidelines in effect:
[GUIDELINES]

Score the content against this rubric:
[RUBRIC]

Respond with only a single JSON object of exactly this shape:
[OUTPUT_CONTRACT]

Content to evaluate:
-----BEGIN CONTENT-----
[CONTENT]
-----END CONTENT-----`

const lectureNoteTemplate = `Evaluate the following lecture notes prepared for the topic "[TOPIC]".

Students have been taught the following topics so far: [TOPICS_TAUGHT_SO_FAR].
The notes accompany the session itself and may go deeper than a pre-read.

Authoring guidelines in effect:
[GUIDELINES]

Score the content against this rubric:
[RUBRIC]

Respond with only a single JSON object of exactly this shape:
[OUTPUT_CONTRACT]

Content to evaluate:
-----BEGIN CONTENT-----
[CONTENT]
-----END CONTENT-----`
