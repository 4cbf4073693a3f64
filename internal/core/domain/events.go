package domain

import "time"

// Routing keys for engagement events
const (
	EventGoodToggled      = "answer.good.toggled"
	EventQuestionAnswered = "question.answered"
	EventDailyTop         = "ranking.daily_top"
)

// GoodToggledEvent is published after a good vote commits
type GoodToggledEvent struct {
	QuestionID uint      `json:"question_id"`
	AnswerID   uint      `json:"answer_id"`
	CustomerID uint      `json:"customer_id"`
	Checked    bool      `json:"checked"`
	GoodCount  int64     `json:"good_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// QuestionAnsweredEvent is published when a banker answers a question
type QuestionAnsweredEvent struct {
	QuestionID uint      `json:"question_id"`
	AnswerID   uint      `json:"answer_id"`
	BankerID   uint      `json:"banker_id"`
	CustomerID uint      `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DailyTopEvent carries the day's most viewed questions
type DailyTopEvent struct {
	Day         string   `json:"day"`
	QuestionIDs []uint   `json:"question_ids"`
	Titles      []string `json:"titles"`
}
