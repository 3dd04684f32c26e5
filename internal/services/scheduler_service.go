package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bumpline/internal/models/db_models"
	"bumpline/internal/models/response_models"
	"bumpline/internal/repositories"
	mem "bumpline/pkg/memcache"
	"bumpline/pkg/utils"
)

// sweepGuardTTL covers duplicate triggers inside the same minute window.
const sweepGuardTTL = 2 * time.Minute

type sendOutcome int

const (
	outcomeSent sendOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// SchedulerServiceInterface runs the per-minute notification sweep and the
// daily trial-expiration pass. Both are also exposed over an internal HTTP
// trigger for external cron runners.
type SchedulerServiceInterface interface {
	RunSweep(ctx context.Context) response_models.SweepResponse
	ExpireTrials(ctx context.Context) (int64, error)
}

type SchedulerService struct {
	profileRepo repositories.ProfileRepository
	chatRepo    repositories.ChatRepository
	content     ContentServiceInterface
	entitlement EntitlementServiceInterface
	sender      SMSSenderInterface
	guard       mem.SweepGuard
	clock       utils.Clock
}

func NewSchedulerService(
	profileRepo repositories.ProfileRepository,
	chatRepo repositories.ChatRepository,
	content ContentServiceInterface,
	entitlement EntitlementServiceInterface,
	sender SMSSenderInterface,
	guard mem.SweepGuard,
	clock utils.Clock,
) SchedulerServiceInterface {
	return &SchedulerService{
		profileRepo: profileRepo,
		chatRepo:    chatRepo,
		content:     content,
		entitlement: entitlement,
		sender:      sender,
		guard:       guard,
		clock:       clock,
	}
}

// RunSweep matches every profile whose stored-UTC preferred time equals the
// current UTC minute and attempts one send per match. Each profile is
// processed independently; one failure never aborts the rest, and the sweep
// keeps no cursor so an interrupted pass simply resumes on the next tick.
func (s *SchedulerService) RunSweep(ctx context.Context) response_models.SweepResponse {
	now := s.clock.Now().UTC()
	slot := now.Format("15:04")

	result := response_models.SweepResponse{Slot: slot}

	profiles, err := s.profileRepo.FindByPreferredTime(ctx, slot)
	if err != nil {
		log.Printf("sweep %s: failed to query profiles: %v", slot, err)
		return result
	}
	result.Matched = len(profiles)

	for i := range profiles {
		switch s.processProfile(ctx, &profiles[i], now, slot) {
		case outcomeSent:
			result.Sent++
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
	}

	if result.Matched > 0 {
		log.Printf("sweep %s: matched=%d sent=%d skipped=%d failed=%d",
			slot, result.Matched, result.Sent, result.Skipped, result.Failed)
	}
	return result
}

func (s *SchedulerService) processProfile(ctx context.Context, profile *db_models.Profile, now time.Time, slot string) (outcome sendOutcome) {
	// A panic composing or sending for one profile must not take down the
	// rest of the sweep.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sweep: panic processing %s: %v", profile.PhoneNumber, r)
			outcome = outcomeFailed
		}
	}()

	guardKey := fmt.Sprintf("%s|%s|%s", profile.PhoneNumber, now.Format("2006-01-02"), slot)
	if !s.guard.Claim(guardKey, sweepGuardTTL) {
		return outcomeSkipped
	}

	body, metered, err := s.compose(ctx, profile)
	if err != nil {
		log.Printf("sweep: compose failed for %s: %v", profile.PhoneNumber, err)
		s.guard.Release(guardKey)
		return outcomeFailed
	}

	if metered {
		if err := s.entitlement.Consume(ctx, profile, db_models.TxnTypeMessageSend); err != nil {
			if errors.Is(err, utils.ErrNoCredits) {
				// Credits ran out between Authorize and Consume;
				// degrade instead of dropping the user silently.
				body = UpsellMessage
			} else {
				log.Printf("sweep: consume failed for %s: %v", profile.PhoneNumber, err)
				s.guard.Release(guardKey)
				return outcomeFailed
			}
		}
	}

	if _, err := s.sender.Send(ctx, profile.PhoneNumber, body); err != nil {
		log.Printf("sweep: send failed for %s: %v", profile.PhoneNumber, err)
		s.guard.Release(guardKey)
		return outcomeFailed
	}

	// Best-effort history log; a failure here does not undo the send.
	entry := &db_models.ChatMessage{
		PhoneNumber: profile.PhoneNumber,
		Role:        db_models.RoleAssistant,
		Content:     body,
	}
	if err := s.chatRepo.Append(ctx, entry); err != nil {
		log.Printf("sweep: history log failed for %s: %v", profile.PhoneNumber, err)
	}

	return outcomeSent
}

// compose builds the outbound body and reports whether the send is metered.
// Entitlement exhaustion produces the degrade message (unmetered), which is a
// normal branch rather than an error.
func (s *SchedulerService) compose(ctx context.Context, profile *db_models.Profile) (string, bool, error) {
	decision := s.entitlement.Authorize(profile)
	if !decision.Allowed {
		return decision.DegradeMessage, false, nil
	}

	week, ok := utils.GestationalWeek(profile.DueDate(), s.clock.Now())
	if !ok {
		return "", false, fmt.Errorf("no due date on profile")
	}

	return s.content.ComposeDailyUpdate(ctx, profile, week), true, nil
}

// ExpireTrials flips trial profiles whose window has lapsed to inactive.
func (s *SchedulerService) ExpireTrials(ctx context.Context) (int64, error) {
	expired, err := s.profileRepo.ExpireTrials(ctx, s.clock.Now().Unix())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Printf("trial sweep: expired %d profiles", expired)
	}
	return expired, nil
}
