package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Customer represents customers table
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Nickname  string    `gorm:"size:50;not null" json:"nickname"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// Banker represents bankers table
type Banker struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	BranchName string    `gorm:"size:100" json:"branch_name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Banker) TableName() string {
	return "bankers"
}

// ============================================================
// Q&A
// ============================================================

// Category represents categories table
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

// Question represents questions table.
// The counters are only changed through atomic column updates.
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	CategoryID uint      `gorm:"index;not null" json:"category_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Location   string    `gorm:"size:50;index" json:"location"`
	ViewCount  int64     `gorm:"not null;default:0" json:"view_count"`
	LikeCount  int64     `gorm:"not null;default:0" json:"like_count"`
	ScrapCount int64     `gorm:"not null;default:0" json:"scrap_count"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	Category Category  `gorm:"foreignKey:CategoryID" json:"-"`
	Answer   *Answer   `gorm:"foreignKey:QuestionID" json:"-"`
	Comments []Comment `gorm:"foreignKey:QuestionID" json:"-"`
	Images   []Image   `gorm:"foreignKey:QuestionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// Answer represents answers table; one row per question at most
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"uniqueIndex;not null" json:"question_id"`
	BankerID   uint      `gorm:"index;not null" json:"banker_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	GoodCount  int64     `gorm:"not null;default:0" json:"good_count"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Banker Banker `gorm:"foreignKey:BankerID" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}

// IncrementGood adds one good vote
func (a *Answer) IncrementGood() {
	a.GoodCount++
}

// DecrementGood removes one good vote, never going below zero
func (a *Answer) DecrementGood() {
	if a.GoodCount > 0 {
		a.GoodCount--
	}
}

// AnswerGood represents answer_goods table.
// The unique index keeps one live vote per (answer, customer).
type AnswerGood struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AnswerID   uint      `gorm:"uniqueIndex:idx_answer_customer;not null" json:"answer_id"`
	CustomerID uint      `gorm:"uniqueIndex:idx_answer_customer;not null" json:"customer_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AnswerGood) TableName() string {
	return "answer_goods"
}

// Comment represents comments table
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"index;not null" json:"question_id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// Image represents images table; FilePath is the url returned by file storage
type Image struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question_id"`
	FilePath   string `gorm:"size:500;not null" json:"file_path"`
}

func (Image) TableName() string {
	return "images"
}

// ============================================================
// Branches & Reservations
// ============================================================

// BranchLocation maps a branch name to the location its questions use
type BranchLocation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BranchName string `gorm:"uniqueIndex;size:100;not null" json:"branch_name"`
	Location   string `gorm:"size:50;not null" json:"location"`
}

func (BranchLocation) TableName() string {
	return "branch_locations"
}

// Reservation represents reservations table
type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      uint      `gorm:"index;not null" json:"customer_id"`
	BranchName      string    `gorm:"size:100;not null" json:"branch_name"`
	BankerName      string    `gorm:"size:50" json:"banker_name"`
	ReservationDate time.Time `gorm:"not null" json:"reservation_date"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Banker{},
		&Category{},
		&Question{},
		&Answer{},
		&AnswerGood{},
		&Comment{},
		&Image{},
		&BranchLocation{},
		&Reservation{},
	)
}
