package models

import "time"

// QuestionSummary is the list projection returned by ranking queries
type QuestionSummary struct {
	QuestionID     uint      `json:"question_id"`
	CustomerID     uint      `json:"customer_id"`
	AuthorNickname string    `json:"author_nickname"`
	AnswerBanker   *string   `json:"answer_banker"`
	CategoryName   string    `json:"category_name"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CommentCount   int64     `json:"comment_count"`
	ScrapCount     int64     `json:"scrap_count"`
	ViewCount      int64     `json:"view_count"`
	LikeCount      int64     `json:"like_count"`
	GoodCount      int64     `json:"good_count"`
}

// ToSummary builds the list projection; relations must be preloaded
func (q *Question) ToSummary() *QuestionSummary {
	s := &QuestionSummary{
		QuestionID:     q.ID,
		CustomerID:     q.CustomerID,
		AuthorNickname: q.Customer.Nickname,
		CategoryName:   q.Category.Name,
		Title:          q.Title,
		Location:       q.Location,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
		CommentCount:   int64(len(q.Comments)),
		ScrapCount:     q.ScrapCount,
		ViewCount:      q.ViewCount,
		LikeCount:      q.LikeCount,
	}
	if q.Answer != nil {
		name := q.Answer.Banker.Name
		s.AnswerBanker = &name
		s.GoodCount = q.Answer.GoodCount
	}
	return s
}

// AnswerResponse DTO
type AnswerResponse struct {
	AnswerID   uint       `json:"answer_id"`
	QuestionID uint       `json:"question_id"`
	BankerID   uint       `json:"banker_id"`
	BankerName string     `json:"banker_name"`
	Content    string     `json:"content"`
	GoodCount  int64      `json:"good_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

func (a *Answer) ToResponse() *AnswerResponse {
	r := &AnswerResponse{
		AnswerID:   a.ID,
		QuestionID: a.QuestionID,
		BankerID:   a.BankerID,
		BankerName: a.Banker.Name,
		Content:    a.Content,
		GoodCount:  a.GoodCount,
		CreatedAt:  a.CreatedAt,
	}
	if !a.UpdatedAt.IsZero() && !a.UpdatedAt.Equal(a.CreatedAt) {
		updated := a.UpdatedAt
		r.UpdatedAt = &updated
	}
	return r
}

// CommentResponse DTO
type CommentResponse struct {
	ID         uint      `json:"id"`
	CustomerID uint      `json:"customer_id"`
	Nickname   string    `json:"nickname"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionDetail is returned by the question detail view
type QuestionDetail struct {
	QuestionID     uint               `json:"question_id"`
	CustomerID     uint               `json:"customer_id"`
	AuthorNickname string             `json:"author_nickname"`
	CategoryName   string             `json:"category_name"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Location       string             `json:"location"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	LikeCount      int64              `json:"like_count"`
	ScrapCount     int64              `json:"scrap_count"`
	ViewCount      int64              `json:"view_count"`
	FilePaths      []string           `json:"file_paths"`
	Answer         *AnswerResponse    `json:"answer"`
	Comments       []*CommentResponse `json:"comments"`
}

// ToDetail builds the detail projection; relations must be preloaded
func (q *Question) ToDetail() *QuestionDetail {
	d := &QuestionDetail{
		QuestionID:     q.ID,
		CustomerID:     q.CustomerID,
		AuthorNickname: q.Customer.Nickname,
		CategoryName:   q.Category.Name,
		Title:          q.Title,
		Content:        q.Content,
		Location:       q.Location,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
		LikeCount:      q.LikeCount,
		ScrapCount:     q.ScrapCount,
		ViewCount:      q.ViewCount,
		FilePaths:      make([]string, 0, len(q.Images)),
		Comments:       make([]*CommentResponse, 0, len(q.Comments)),
	}
	for _, img := range q.Images {
		d.FilePaths = append(d.FilePaths, img.FilePath)
	}
	if q.Answer != nil {
		d.Answer = q.Answer.ToResponse()
	}
	for _, c := range q.Comments {
		d.Comments = append(d.Comments, &CommentResponse{
			ID:         c.ID,
			CustomerID: c.CustomerID,
			Nickname:   c.Customer.Nickname,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		})
	}
	return d
}

// TodayQuestion is one entry of today's most viewed questions
type TodayQuestion struct {
	QuestionID uint   `json:"question_id"`
	Title      string `json:"title"`
	ViewCount  int64  `json:"view_count"`
}
