package entity

// QuizQuestion is derived from a study item on demand and never persisted.
// Answer is guaranteed non-empty: generation degrades to a definition-recall
// question instead of failing on malformed content.
type QuizQuestion struct {
	ItemID      string
	Type        ItemType
	Question    string
	Answer      string
	Explanation string
}

// AnswerResult is returned to the caller after an answer submission.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}
