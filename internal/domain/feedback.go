package domain

import "time"

// FeedbackAnswer is one of the fixed answers offered in the feedback dialog.
type FeedbackAnswer string

const (
	AnswerExcellent FeedbackAnswer = "excelente"
	AnswerGood      FeedbackAnswer = "buena"
	AnswerFair      FeedbackAnswer = "regular"
	AnswerBad       FeedbackAnswer = "mala"
)

// Valid reports whether a is one of the known answers.
func (a FeedbackAnswer) Valid() bool {
	switch a {
	case AnswerExcellent, AnswerGood, AnswerFair, AnswerBad:
		return true
	}
	return false
}

// Feedback is a member's rating of a gym. Append-only.
type Feedback struct {
	ID        string         `bson:"_id" json:"id"`
	GymID     string         `bson:"gymId" json:"gymId" validate:"required"`
	UserID    string         `bson:"userId,omitempty" json:"userId,omitempty"`
	Rating    int            `bson:"rating" json:"rating" validate:"min=1,max=5"`
	Answer    FeedbackAnswer `bson:"answer" json:"answer" validate:"required"`
	Comment   string         `bson:"comment,omitempty" json:"comment,omitempty" validate:"max=2000"`
	Platform  string         `bson:"platform" json:"platform" validate:"required,oneof=ios android web"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
}
