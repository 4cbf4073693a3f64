package config

import (
	"context"
	"errors"
	"log"

	"hana-qna/internal/adapters/persistence/models"
	"hana-qna/internal/adapters/persistence/repositories"
	"hana-qna/internal/pkg/password"

	"gorm.io/gorm"
)

// DefaultCategories are the question categories every deployment starts with
var DefaultCategories = []string{"deposit", "loan", "card", "fx", "pension", "etc"}

// DefaultBranches maps the seeded branch names to the location their questions use
var DefaultBranches = []models.BranchLocation{
	{BranchName: "Seongsu-dong", Location: "Seongdong"},
	{BranchName: "Wangsimni", Location: "Seongdong"},
	{BranchName: "Mapo", Location: "Mapo"},
	{BranchName: "Hongdae", Location: "Mapo"},
	{BranchName: "Jamsil", Location: "Songpa"},
	{BranchName: "Gangnam Finance Center", Location: "Gangnam"},
}

// devPassword is the password of the seeded development accounts
const devPassword = "hana1234!"

// Seeder handles master data and development account seeding.
// It only goes through repositories so both store drivers can be seeded.
type Seeder struct {
	categories repositories.CategoryRepository
	branches   repositories.BranchRepository
	customers  repositories.CustomerRepository
	bankers    repositories.BankerRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(
	categories repositories.CategoryRepository,
	branches repositories.BranchRepository,
	customers repositories.CustomerRepository,
	bankers repositories.BankerRepository,
) *Seeder {
	return &Seeder{
		categories: categories,
		branches:   branches,
		customers:  customers,
		bankers:    bankers,
	}
}

// SeedMasterData seeds categories and branch locations; existing rows are left alone
func (s *Seeder) SeedMasterData(ctx context.Context) error {
	for _, name := range DefaultCategories {
		_, err := s.categories.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.categories.Create(ctx, &models.Category{Name: name}); err != nil {
			return err
		}
		log.Printf("   Created category: %s", name)
	}

	for _, b := range DefaultBranches {
		_, err := s.branches.GetByBranchName(ctx, b.BranchName)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		branch := b
		if err := s.branches.Create(ctx, &branch); err != nil {
			return err
		}
		log.Printf("   Created branch: %s -> %s", b.BranchName, b.Location)
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

// SeedDevAccounts seeds one customer and one banker for local testing.
// This is for development only; production accounts come from signup.
func (s *Seeder) SeedDevAccounts(ctx context.Context) error {
	hashed, err := password.Hash(devPassword)
	if err != nil {
		return err
	}

	if _, err := s.customers.GetByEmail(ctx, "customer@hana.dev"); errors.Is(err, gorm.ErrRecordNotFound) {
		customer := &models.Customer{
			Email:    "customer@hana.dev",
			Password: hashed,
			Name:     "Kim Minji",
			Nickname: "minji",
		}
		if err := s.customers.Create(ctx, customer); err != nil {
			return err
		}
		log.Printf("✅ Dev customer created: %s", customer.Email)
	} else if err != nil {
		return err
	}

	if _, err := s.bankers.GetByEmail(ctx, "banker@hana.dev"); errors.Is(err, gorm.ErrRecordNotFound) {
		banker := &models.Banker{
			Email:      "banker@hana.dev",
			Password:   hashed,
			Name:       "Lee Seojun",
			BranchName: "Seongsu-dong",
		}
		if err := s.bankers.Create(ctx, banker); err != nil {
			return err
		}
		log.Printf("✅ Dev banker created: %s", banker.Email)
	} else if err != nil {
		return err
	}

	return nil
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context, withDevAccounts bool) error {
	log.Println("🌱 Running database seeders...")

	if err := s.SeedMasterData(ctx); err != nil {
		return err
	}

	if withDevAccounts {
		if err := s.SeedDevAccounts(ctx); err != nil {
			log.Printf("⚠️ Dev account seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}
