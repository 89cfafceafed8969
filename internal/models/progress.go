package models

import "time"

// BadgeScoreThreshold is the minimum score on a completed quiz that earns the category badge
const BadgeScoreThreshold = 80

// UserProgress records a user's latest submission for one quiz
type UserProgress struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	QuizID           int64      `json:"quizId"`
	Score            *int       `json:"score"`
	Completed        bool       `json:"completed"`
	CorrectAnswers   int        `json:"correctAnswers"`
	IncorrectAnswers int        `json:"incorrectAnswers"`
	LastCompleted    *time.Time `json:"lastCompleted"`
}

// Clone returns a copy that shares no pointers with p
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	c := *p
	if p.Score != nil {
		score := *p.Score
		c.Score = &score
	}
	if p.LastCompleted != nil {
		t := *p.LastCompleted
		c.LastCompleted = &t
	}
	return &c
}

// QuizResult is the payload of a quiz submission
type QuizResult struct {
	Score            *int `json:"score" validate:"omitempty,min=0"`
	Completed        bool `json:"completed"`
	CorrectAnswers   int  `json:"correctAnswers" validate:"min=0"`
	IncorrectAnswers int  `json:"incorrectAnswers" validate:"min=0"`
}

// EarnsBadge reports whether this result qualifies for the category badge
func (r QuizResult) EarnsBadge() bool {
	return r.Completed && r.Score != nil && *r.Score >= BadgeScoreThreshold
}

// BadgeName builds the badge awarded for mastering a category
func BadgeName(categoryName string) string {
	return categoryName + " Master"
}
