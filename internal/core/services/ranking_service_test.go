package services

import (
	"errors"
	"testing"
	"time"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/core/domain"
)

func ids(summaries []*models.QuestionSummary) []uint {
	out := make([]uint, len(summaries))
	for i, s := range summaries {
		out[i] = s.QuestionID
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMostHelpful_UnansweredLast(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	cat := f.category("deposit")
	b := f.banker("kim")

	q1 := f.question(c, cat, "Seongsu", "q1")
	q2 := f.question(c, cat, "Seongsu", "q2")
	q3 := f.question(c, cat, "Seongsu", "q3")
	f.answer(q1, b, 5, time.Now())
	f.answer(q3, b, 2, time.Now())

	for _, location := range []string{"Seongsu", ""} {
		got, err := f.ranking.MostHelpful(f.ctx, location)
		if err != nil {
			t.Fatalf("MostHelpful(%q): %v", location, err)
		}
		want := []uint{q1.ID, q3.ID, q2.ID}
		if !equalIDs(ids(got), want) {
			t.Errorf("MostHelpful(%q) = %v, want %v", location, ids(got), want)
		}
		if got[0].GoodCount != 5 || got[0].AnswerBanker == nil || *got[0].AnswerBanker != "kim" {
			t.Errorf("summary = %+v", got[0])
		}
		if got[2].AnswerBanker != nil {
			t.Error("unanswered question must have no banker")
		}
	}
}

func TestRecentlyAnswered(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	cat := f.category("loan")
	b := f.banker("lee")
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var answered []*models.Question
	for i := 0; i < 4; i++ {
		q := f.question(c, cat, "Jamsil", "answered")
		f.answer(q, b, 0, base.Add(time.Duration(i)*time.Hour))
		answered = append(answered, q)
	}
	f.question(c, cat, "Jamsil", "unanswered")
	other := f.question(c, cat, "Mapo", "elsewhere")
	f.answer(other, b, 0, base.Add(10*time.Hour))

	got, err := f.ranking.RecentlyAnswered(f.ctx, "Jamsil")
	if err != nil {
		t.Fatalf("RecentlyAnswered: %v", err)
	}
	want := []uint{answered[3].ID, answered[2].ID, answered[1].ID}
	if !equalIDs(ids(got), want) {
		t.Errorf("RecentlyAnswered(Jamsil) = %v, want %v", ids(got), want)
	}

	got, err = f.ranking.RecentlyAnswered(f.ctx, "")
	if err != nil {
		t.Fatalf("RecentlyAnswered: %v", err)
	}
	want = []uint{other.ID, answered[3].ID, answered[2].ID}
	if !equalIDs(ids(got), want) {
		t.Errorf("RecentlyAnswered(all) = %v, want %v", ids(got), want)
	}
}

func TestLatestAndLikes(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	cat := f.category("card")
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	old := f.question(c, cat, "Mapo", "old", withCreatedAt(base), withLikes(7))
	mid := f.question(c, cat, "Mapo", "mid", withCreatedAt(base.Add(time.Hour)), withLikes(1))
	fresh := f.question(c, cat, "Mapo", "fresh", withCreatedAt(base.Add(2*time.Hour)), withLikes(7))
	away := f.question(c, cat, "Jamsil", "away", withCreatedAt(base.Add(3*time.Hour)), withLikes(9))

	got, err := f.ranking.Latest(f.ctx, "Mapo")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if want := []uint{fresh.ID, mid.ID, old.ID}; !equalIDs(ids(got), want) {
		t.Errorf("Latest(Mapo) = %v, want %v", ids(got), want)
	}

	got, err = f.ranking.Latest(f.ctx, "")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if want := []uint{away.ID, fresh.ID, mid.ID, old.ID}; !equalIDs(ids(got), want) {
		t.Errorf("Latest(all) = %v, want %v", ids(got), want)
	}

	got, err = f.ranking.MostLiked(f.ctx, "Mapo")
	if err != nil {
		t.Fatalf("MostLiked: %v", err)
	}
	// equal likes fall back to id order
	if want := []uint{old.ID, fresh.ID, mid.ID}; !equalIDs(ids(got), want) {
		t.Errorf("MostLiked(Mapo) = %v, want %v", ids(got), want)
	}

	got, err = f.ranking.ByLocation(f.ctx, "Jamsil")
	if err != nil {
		t.Fatalf("ByLocation: %v", err)
	}
	if want := []uint{away.ID}; !equalIDs(ids(got), want) {
		t.Errorf("ByLocation(Jamsil) = %v, want %v", ids(got), want)
	}
}

func TestByCategoryAndCustomer(t *testing.T) {
	f := newFixture(t)
	alice := f.customer("alice")
	bob := f.customer("bob")
	deposit := f.category("deposit")
	loan := f.category("loan")

	q1 := f.question(alice, deposit, "Mapo", "q1")
	f.question(alice, loan, "Mapo", "q2")
	f.question(alice, deposit, "Jamsil", "q3")

	got, err := f.ranking.ByCategory(f.ctx, "deposit", "Mapo")
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if want := []uint{q1.ID}; !equalIDs(ids(got), want) {
		t.Errorf("ByCategory = %v, want %v", ids(got), want)
	}

	if _, err := f.ranking.ByCategory(f.ctx, "crypto", "Mapo"); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("unknown category: %v", err)
	}

	got, err = f.ranking.ByCustomer(f.ctx, alice.ID)
	if err != nil {
		t.Fatalf("ByCustomer: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("ByCustomer(alice) returned %d questions, want 3", len(got))
	}

	_, err = f.ranking.ByCustomer(f.ctx, bob.ID)
	if !errors.Is(err, domain.ErrNoCustomerQuestions) || !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ByCustomer(bob) err = %v, want ErrNoCustomerQuestions", err)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	cat := f.category("deposit")

	byTitle := f.question(c, cat, "Mapo", "Savings account rates")
	byContent := f.question(c, cat, "Mapo", "question", func(q *models.Question) {
		q.Content = "which SAVINGS plan fits a student?"
	})
	f.question(c, cat, "Mapo", "mortgage")
	f.question(c, cat, "Jamsil", "savings elsewhere")

	got, err := f.ranking.Search(f.ctx, "Mapo", "savings")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	found := map[uint]bool{}
	for _, id := range ids(got) {
		found[id] = true
	}
	if len(got) != 2 || !found[byTitle.ID] || !found[byContent.ID] {
		t.Errorf("Search = %v, want %d and %d", ids(got), byTitle.ID, byContent.ID)
	}

	if _, err := f.ranking.Search(f.ctx, "Mapo", "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank term: %v", err)
	}
}

func TestByBranchLatest(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	cat := f.category("deposit")
	if err := f.store.Branches().Create(f.ctx, &models.BranchLocation{BranchName: "Seongsu-dong", Location: "Seongdong"}); err != nil {
		t.Fatalf("create branch: %v", err)
	}
	q := f.question(c, cat, "Seongdong", "near branch")
	f.question(c, cat, "Mapo", "far away")

	got, err := f.ranking.ByBranchLatest(f.ctx, "Seongsu-dong")
	if err != nil {
		t.Fatalf("ByBranchLatest: %v", err)
	}
	if want := []uint{q.ID}; !equalIDs(ids(got), want) {
		t.Errorf("ByBranchLatest = %v, want %v", ids(got), want)
	}

	if _, err := f.ranking.ByBranchLatest(f.ctx, "Nowhere"); !errors.Is(err, domain.ErrBranchNotFound) {
		t.Errorf("unknown branch: %v", err)
	}
}

func TestTodayTop(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)
	f.ranking.now = func() time.Time { return now }

	c := f.customer("c")
	cat := f.category("deposit")

	yesterday := f.question(c, cat, "Mapo", "yesterday", withCreatedAt(now.Add(-16*time.Hour)), withViews(1000))
	var today []*models.Question
	for i := 0; i < 8; i++ {
		today = append(today, f.question(c, cat, "Mapo", "today",
			withCreatedAt(now.Add(-time.Duration(i)*time.Hour)), withViews(int64(i*10))))
	}
	f.question(c, cat, "Jamsil", "other location", withCreatedAt(now), withViews(500))

	top, err := f.ranking.TodayTop(f.ctx, "Mapo")
	if err != nil {
		t.Fatalf("TodayTop: %v", err)
	}
	if len(top) != TodayTopLimit {
		t.Fatalf("len = %d, want %d", len(top), TodayTopLimit)
	}
	for i, entry := range top {
		if entry.QuestionID == yesterday.ID {
			t.Error("yesterday's question must not be in today's top")
		}
		want := today[7-i]
		if entry.QuestionID != want.ID || entry.ViewCount != want.ViewCount {
			t.Errorf("top[%d] = %+v, want id %d with %d views", i, entry, want.ID, want.ViewCount)
		}
	}

	all, err := f.ranking.TodayTop(f.ctx, "")
	if err != nil {
		t.Fatalf("TodayTop(all): %v", err)
	}
	if all[0].ViewCount != 500 {
		t.Errorf("TodayTop(all)[0] = %+v, want the 500-view question", all[0])
	}
}
