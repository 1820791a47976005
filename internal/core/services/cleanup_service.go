package services

import (
	"context"
	"log"
	"time"

	"siports-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// anonymous sessions older than this are purged
const anonymousSessionTTL = 24 * time.Hour

// CleanupService purges stale anonymous visitor sessions on a schedule
type CleanupService struct {
	userRepo repositories.UserRepository
	cron     *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(userRepo repositories.UserRepository) *CleanupService {
	return &CleanupService{
		userRepo: userRepo,
		cron:     cron.New(),
	}
}

// Start schedules the hourly purge
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		s.Run(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Anonymous session cleanup scheduled (hourly)")
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Run purges anonymous sessions past their TTL
func (s *CleanupService) Run(ctx context.Context) {
	cutoff := time.Now().Add(-anonymousSessionTTL)

	deleted, err := s.userRepo.DeleteAnonymousBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ Anonymous session cleanup failed: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("✅ Purged %d stale anonymous sessions", deleted)
	}
}
