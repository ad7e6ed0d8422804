// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
)

// DigestMailer sends a post digest to a single user.
type DigestMailer interface {
	SendDigest(to, name string, posts []*models.Post) error
}

// Scheduler drives the daily digest job
type Scheduler struct {
	cron   *cron.Cron
	repo   repository.Repository
	mailer DigestMailer
	log    *logrus.Logger
}

// NewScheduler creates a scheduler around the given repository and mailer
func NewScheduler(repo repository.Repository, mailer DigestMailer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		repo:   repo,
		mailer: mailer,
		log:    log,
	}
}

// Start registers the digest job with the given cron schedule and starts
// the scheduler.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunDigest); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Digest scheduler started: %s", schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunDigest mails every user the posts created in the last 24 hours.
// A cycle with no new posts sends nothing.
func (s *Scheduler) RunDigest() {
	ctx := context.Background()

	posts, err := s.repo.FindPostsCreatedSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		s.log.Errorf("Digest: failed to load posts: %v", err)
		return
	}
	if len(posts) == 0 {
		s.log.Debug("Digest: no new posts, skipping")
		return
	}

	users, err := s.repo.FindAllUsers(ctx)
	if err != nil {
		s.log.Errorf("Digest: failed to load users: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		if err := s.mailer.SendDigest(user.Email, user.Name, posts); err != nil {
			s.log.Warnf("Digest: send to %s failed: %v", user.Email, err)
			continue
		}
		sent++
	}
	s.log.Infof("Digest: %d posts sent to %d users", len(posts), sent)
}
