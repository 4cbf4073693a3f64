package services

import (
	"errors"
	"testing"
	"time"

	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/core/domain"
)

func TestAddQuestion(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	f.category("deposit")

	detail, err := f.questions.AddQuestion(f.ctx, c.ID, &QuestionInput{
		CategoryName: "deposit",
		Title:        " <b>Term deposit</b> ",
		Content:      "<script>x()</script>Is early withdrawal allowed?",
		Location:     "Mapo",
	}, []Upload{{Name: "a.png"}, {Name: "b.png"}})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	if detail.Title != "Term deposit" || detail.Content != "Is early withdrawal allowed?" {
		t.Errorf("text not sanitized: %q / %q", detail.Title, detail.Content)
	}
	want := []string{"https://files.example.com/a.png", "https://files.example.com/b.png"}
	if len(detail.FilePaths) != 2 || detail.FilePaths[0] != want[0] || detail.FilePaths[1] != want[1] {
		t.Errorf("FilePaths = %v, want %v", detail.FilePaths, want)
	}
	if detail.Answer != nil || detail.ViewCount != 0 {
		t.Errorf("fresh question = %+v", detail)
	}
}

func TestAddQuestion_UploadFailureStoresNothing(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	f.category("deposit")
	storage := &fakeStorage{failOn: map[string]bool{"second.png": true}}
	svc := NewQuestionService(f.store.Questions(), f.store.Categories(), f.store.Customers(), f.store.Comments(), storage, nil)

	_, err := svc.AddQuestion(f.ctx, c.ID, &QuestionInput{
		CategoryName: "deposit",
		Title:        "t",
		Content:      "c",
	}, []Upload{{Name: "first.png"}, {Name: "second.png"}, {Name: "third.png"}})
	if !errors.Is(err, domain.ErrUpstreamStorage) {
		t.Fatalf("err = %v, want ErrUpstreamStorage", err)
	}

	all, err := f.store.Questions().List(f.ctx, repositories.QuestionQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("%d questions stored after failed upload", len(all))
	}
	if len(storage.saved) != 1 {
		t.Errorf("uploads attempted after failure: %v", storage.saved)
	}
}

func TestAddQuestion_Validation(t *testing.T) {
	f := newFixture(t)
	c := f.customer("c")
	f.category("deposit")

	tests := []struct {
		name       string
		customerID uint
		input      QuestionInput
		want       error
	}{
		{"missing title", c.ID, QuestionInput{CategoryName: "deposit", Content: "c"}, domain.ErrInvalidInput},
		{"markup only title", c.ID, QuestionInput{CategoryName: "deposit", Title: "<br>", Content: "c"}, domain.ErrInvalidInput},
		{"unknown category", c.ID, QuestionInput{CategoryName: "crypto", Title: "t", Content: "c"}, domain.ErrCategoryNotFound},
		{"unknown author", 999, QuestionInput{CategoryName: "deposit", Title: "t", Content: "c"}, domain.ErrCustomerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			if _, err := f.questions.AddQuestion(f.ctx, tt.customerID, &input, nil); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModifyQuestion(t *testing.T) {
	f := newFixture(t)
	author := f.customer("author")
	stranger := f.customer("stranger")
	f.category("deposit")
	f.category("loan")

	created, err := f.questions.AddQuestion(f.ctx, author.ID, &QuestionInput{
		CategoryName: "deposit", Title: "t", Content: "c", Location: "Mapo",
	}, []Upload{{Name: "old.png"}})
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	input := &QuestionInput{CategoryName: "loan", Title: "t2", Content: "c2", Location: "Jamsil"}
	if _, err := f.questions.ModifyQuestion(f.ctx, created.QuestionID, stranger.ID, input, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger modify: %v", err)
	}

	detail, err := f.questions.ModifyQuestion(f.ctx, created.QuestionID, author.ID, input, []Upload{{Name: "new.png"}})
	if err != nil {
		t.Fatalf("ModifyQuestion: %v", err)
	}
	if detail.CategoryName != "loan" || detail.Title != "t2" || detail.Location != "Jamsil" {
		t.Errorf("detail = %+v", detail)
	}
	if len(detail.FilePaths) != 1 || detail.FilePaths[0] != "https://files.example.com/new.png" {
		t.Errorf("FilePaths = %v", detail.FilePaths)
	}

	if _, err := f.questions.ModifyQuestion(f.ctx, 999, author.ID, input, nil); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("missing question: %v", err)
	}
}

func TestDeleteQuestion_RemovesEverything(t *testing.T) {
	f := newFixture(t)
	author := f.customer("author")
	voter := f.customer("voter")
	q := f.question(author, f.category("deposit"), "", "q")
	a := f.answer(q, f.banker("b"), 0, time.Now())

	if _, err := f.engagement.ToggleGood(f.ctx, q.ID, voter.ID); err != nil {
		t.Fatalf("ToggleGood: %v", err)
	}
	if _, err := f.questions.AddComment(f.ctx, q.ID, voter.ID, "thanks"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := f.questions.DeleteQuestion(f.ctx, q.ID, voter.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-author delete: %v", err)
	}
	if err := f.questions.DeleteQuestion(f.ctx, q.ID, author.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	if ok, _ := f.store.Questions().Exists(f.ctx, q.ID); ok {
		t.Error("question still exists")
	}
	if _, err := f.store.Answers().GetByID(f.ctx, a.ID); err == nil {
		t.Error("answer still exists")
	}
	if f.voted(a.ID, voter.ID) {
		t.Error("vote still exists")
	}
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	c := f.customer("commenter")
	q := f.question(c, f.category("deposit"), "", "q")

	comment, err := f.questions.AddComment(f.ctx, q.ID, c.ID, " <i>helpful</i> ")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Nickname != "commenter" || comment.Content != "<i>helpful</i>" {
		t.Errorf("comment = %+v", comment)
	}

	detail, err := f.engagement.GetOneQuestion(f.ctx, q.ID)
	if err != nil {
		t.Fatalf("GetOneQuestion: %v", err)
	}
	if len(detail.Comments) != 1 || detail.Comments[0].ID != comment.ID {
		t.Errorf("Comments = %+v", detail.Comments)
	}

	if _, err := f.questions.AddComment(f.ctx, 999, c.ID, "x"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("missing question: %v", err)
	}
	if _, err := f.questions.AddComment(f.ctx, q.ID, c.ID, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank comment: %v", err)
	}
}
