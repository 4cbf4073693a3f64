package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hana-qna/internal/core/domain"
)

func TestAddAnswer(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	b := f.banker("kim")
	q := f.question(c, f.category("deposit"), "", "q")

	resp, err := f.answers.AddAnswer(f.ctx, q.ID, b.ID, "Yes, with a reduced rate.")
	if err != nil {
		t.Fatalf("AddAnswer: %v", err)
	}
	if resp.BankerName != "kim" || resp.GoodCount != 0 || resp.UpdatedAt != nil {
		t.Errorf("resp = %+v", resp)
	}

	events := f.pub.byKey(domain.EventQuestionAnswered)
	if len(events) != 1 {
		t.Fatalf("published %d answered events, want 1", len(events))
	}
	if ev := events[0].(*domain.QuestionAnsweredEvent); ev.CustomerID != c.ID || ev.AnswerID != resp.AnswerID {
		t.Errorf("event = %+v", ev)
	}

	other := f.banker("lee")
	if _, err := f.answers.AddAnswer(f.ctx, q.ID, other.ID, "me too"); !errors.Is(err, domain.ErrAnswerExists) {
		t.Errorf("second answer: %v", err)
	}
}

func TestAddAnswer_Errors(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	b := f.banker("kim")
	q := f.question(c, f.category("deposit"), "", "q")

	tests := []struct {
		name       string
		questionID uint
		bankerID   uint
		content    string
		want       error
	}{
		{"missing question", 999, b.ID, "a", domain.ErrQuestionNotFound},
		{"missing banker", q.ID, 999, "a", domain.ErrBankerNotFound},
		{"blank content", q.ID, b.ID, " ", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.answers.AddAnswer(f.ctx, tt.questionID, tt.bankerID, tt.content); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateAnswer_KeepsGoodCount(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	b := f.banker("kim")
	q := f.question(c, f.category("deposit"), "", "q")
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := f.answer(q, b, 3, created)

	edited := created.Add(time.Hour)
	f.answers.now = func() time.Time { return edited }

	if _, err := f.answers.UpdateAnswer(f.ctx, a.ID, f.banker("lee").ID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other banker update: %v", err)
	}

	resp, err := f.answers.UpdateAnswer(f.ctx, a.ID, b.ID, "revised")
	if err != nil {
		t.Fatalf("UpdateAnswer: %v", err)
	}
	if resp.Content != "revised" || resp.GoodCount != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.UpdatedAt == nil || !resp.UpdatedAt.Equal(edited) {
		t.Errorf("UpdatedAt = %v, want %v", resp.UpdatedAt, edited)
	}
	if got := f.goodCount(a.ID); got != 3 {
		t.Errorf("stored goodCount = %d, want 3", got)
	}

	if _, err := f.answers.UpdateAnswer(f.ctx, 999, b.ID, "x"); !errors.Is(err, domain.ErrAnswerNotFound) {
		t.Errorf("missing answer: %v", err)
	}
}

func TestDeleteAnswer_DropsVotes(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	b := f.banker("kim")
	q := f.question(c, f.category("deposit"), "", "q")
	a := f.answer(q, b, 0, time.Now())

	if _, err := f.engagement.ToggleGood(f.ctx, q.ID, c.ID); err != nil {
		t.Fatalf("ToggleGood: %v", err)
	}
	if err := f.answers.DeleteAnswer(f.ctx, a.ID, b.ID); err != nil {
		t.Fatalf("DeleteAnswer: %v", err)
	}
	if f.voted(a.ID, c.ID) {
		t.Error("vote survived its answer")
	}
	if _, err := f.engagement.ToggleGood(f.ctx, q.ID, c.ID); !errors.Is(err, domain.ErrNoAnswerYet) {
		t.Errorf("toggle after delete: %v", err)
	}

	// the question can be answered again
	if _, err := f.answers.AddAnswer(f.ctx, q.ID, b.ID, "fresh answer"); err != nil {
		t.Errorf("re-answer: %v", err)
	}
}

func TestReservation(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	svc := NewReservationService(f.store.Reservations(), f.store.Customers())
	date := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	id, err := svc.MakeReservation(f.ctx, c.ID, &ReservationInput{BranchName: "Seongsu", BankerName: "kim", ReservationDate: date})
	if err != nil || id == 0 {
		t.Fatalf("MakeReservation = %d, %v", id, err)
	}

	if _, err := svc.MakeReservation(f.ctx, c.ID, &ReservationInput{ReservationDate: date}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing branch: %v", err)
	}
	if _, err := svc.MakeReservation(f.ctx, 999, &ReservationInput{BranchName: "Seongsu", ReservationDate: date}); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("missing customer: %v", err)
	}
}

func TestDigest_PublishesDailyTop(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 5, 20, 23, 55, 0, 0, time.UTC)
	f.ranking.now = func() time.Time { return now }

	c := f.customer("c")
	cat := f.category("deposit")
	popular := f.question(c, cat, "Mapo", "popular", withCreatedAt(now.Add(-time.Hour)), withViews(40))
	quiet := f.question(c, cat, "Jamsil", "quiet", withCreatedAt(now.Add(-2*time.Hour)), withViews(3))

	digest := NewDigestService(f.ranking, f.pub)
	digest.now = func() time.Time { return now }

	event, err := digest.PublishDailyTop(context.Background())
	if err != nil {
		t.Fatalf("PublishDailyTop: %v", err)
	}
	if event.Day != "2026-05-20" {
		t.Errorf("Day = %q", event.Day)
	}
	if len(event.QuestionIDs) != 2 || event.QuestionIDs[0] != popular.ID || event.QuestionIDs[1] != quiet.ID {
		t.Errorf("QuestionIDs = %v", event.QuestionIDs)
	}
	if len(f.pub.byKey(domain.EventDailyTop)) != 1 {
		t.Error("daily top was not published")
	}
}
