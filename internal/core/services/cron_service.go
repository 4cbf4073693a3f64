package services

import (
	"context"
	"log"
	"time"

	"hana-qna/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// ============================================================
// Daily digest: today's most viewed questions
// ============================================================

// DigestService publishes the day's top questions
type DigestService struct {
	ranking   *RankingService
	publisher EventPublisher
	now       func() time.Time
}

// NewDigestService creates a new digest service
func NewDigestService(ranking *RankingService, publisher EventPublisher) *DigestService {
	return &DigestService{
		ranking:   ranking,
		publisher: publisher,
		now:       time.Now,
	}
}

// PublishDailyTop computes today's top questions across all locations and publishes them
func (s *DigestService) PublishDailyTop(ctx context.Context) (*domain.DailyTopEvent, error) {
	top, err := s.ranking.TodayTop(ctx, "")
	if err != nil {
		return nil, err
	}

	event := &domain.DailyTopEvent{
		Day:         s.now().Format("2006-01-02"),
		QuestionIDs: make([]uint, 0, len(top)),
		Titles:      make([]string, 0, len(top)),
	}
	for _, q := range top {
		event.QuestionIDs = append(event.QuestionIDs, q.QuestionID)
		event.Titles = append(event.Titles, q.Title)
	}

	publish(ctx, s.publisher, domain.EventDailyTop, event)
	log.Printf("📊 Daily top for %s: %d questions", event.Day, len(top))
	return event, nil
}

// ============================================================
// Scheduler
// ============================================================

// CronService runs the scheduled jobs
type CronService struct {
	cron   *cron.Cron
	digest *DigestService
	spec   string
}

// NewCronService creates a scheduler that runs the digest on spec
func NewCronService(digest *DigestService, spec string) *CronService {
	return &CronService{
		cron:   cron.New(),
		digest: digest,
		spec:   spec,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := s.digest.PublishDailyTop(ctx); err != nil {
			log.Printf("❌ Daily digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started (digest: %s)", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}
