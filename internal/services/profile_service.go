package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bumpline/internal/models/db_models"
	"bumpline/internal/models/request_models"
	"bumpline/internal/models/response_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

const dateLayout = "2006-01-02"

type TrialConfig struct {
	Credits int
	Days    int
}

type ProfileServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterProfileRequest) (*response_models.ProfileResponse, error)
	GetByPhone(ctx context.Context, phone string) (*response_models.ProfileResponse, error)
	Update(ctx context.Context, phone string, request request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error)
}

type ProfileService struct {
	profileRepo repositories.ProfileRepository
	txnRepo     repositories.CreditTransactionRepository
	chatRepo    repositories.ChatRepository
	sender      SMSSenderInterface
	clock       utils.Clock
	trial       TrialConfig
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	txnRepo repositories.CreditTransactionRepository,
	chatRepo repositories.ChatRepository,
	sender SMSSenderInterface,
	clock utils.Clock,
	trial TrialConfig,
) ProfileServiceInterface {
	return &ProfileService{
		profileRepo: profileRepo,
		txnRepo:     txnRepo,
		chatRepo:    chatRepo,
		sender:      sender,
		clock:       clock,
		trial:       trial,
	}
}

func (p *ProfileService) Register(ctx context.Context, request request_models.RegisterProfileRequest) (*response_models.ProfileResponse, error) {
	phone := NormalizePhone(request.PhoneNumber)
	if phone == "" {
		return nil, utils.ErrInvalidPhone
	}

	existing, err := p.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrProfileAlreadyExists
	}

	now := p.clock.Now()

	var dueDateAt, lmpAt *int64
	if request.DueDate != "" {
		if due, err := time.Parse(dateLayout, request.DueDate); err == nil {
			unix := due.Unix()
			dueDateAt = &unix
		}
	}
	if request.LMPDate != "" {
		if lmp, err := time.Parse(dateLayout, request.LMPDate); err == nil {
			unix := lmp.Unix()
			lmpAt = &unix
			if dueDateAt == nil {
				estimated := utils.DueDateFromLMP(lmp).Unix()
				dueDateAt = &estimated
			}
		}
	}

	preferredLocal := request.PreferredTime
	if preferredLocal == "" {
		preferredLocal = utils.DefaultLocalTime
	}
	if !utils.ValidWallClock(preferredLocal) {
		return nil, utils.ErrInvalidTime
	}

	profile := &db_models.Profile{
		PhoneNumber:        phone,
		Name:               request.Name,
		DueDateAt:          dueDateAt,
		LMPAt:              lmpAt,
		Interests:          request.Interests,
		Lifestyle:          request.Lifestyle,
		City:               request.City,
		PreferredTimeUTC:   utils.LocalToUTC(preferredLocal, request.City, now),
		SubscriptionStatus: db_models.SubStatusTrial,
		Tier:               db_models.TierNone,
		Credits:            p.trial.Credits,
		TrialEndsAt:        now.AddDate(0, 0, p.trial.Days).Unix(),
	}

	if err := p.profileRepo.InsertTx(profile, ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}

	grant := &db_models.CreditTransaction{
		PhoneNumber: phone,
		Amount:      p.trial.Credits,
		Type:        db_models.TxnTypeTrialGrant,
	}
	if err := p.txnRepo.Insert(ctx, grant); err != nil {
		log.Printf("Error logging trial grant for %s: %v", phone, err)
	}

	p.sendWelcome(ctx, profile)

	return p.toResponse(profile), nil
}

func (p *ProfileService) sendWelcome(ctx context.Context, profile *db_models.Profile) {
	welcome := fmt.Sprintf(
		"Welcome to bumpline, %s! 💜 You'll get your first daily update at %s. "+
			"Reply to this number any time with questions.",
		profile.Name,
		utils.UTCToLocal(profile.PreferredTimeUTC, profile.City, p.clock.Now()),
	)

	if _, err := p.sender.Send(ctx, profile.PhoneNumber, welcome); err != nil {
		// Registration still succeeds; the welcome text is best-effort.
		log.Printf("Error sending welcome message to %s: %v", profile.PhoneNumber, err)
		return
	}

	entry := &db_models.ChatMessage{
		PhoneNumber: profile.PhoneNumber,
		Role:        db_models.RoleAssistant,
		Content:     welcome,
	}
	if err := p.chatRepo.Append(ctx, entry); err != nil {
		log.Printf("Error logging welcome message for %s: %v", profile.PhoneNumber, err)
	}
}

func (p *ProfileService) GetByPhone(ctx context.Context, phone string) (*response_models.ProfileResponse, error) {
	profile, err := p.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}

	return p.toResponse(profile), nil
}

func (p *ProfileService) Update(ctx context.Context, phone string, request request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error) {
	profile, err := p.profileRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}

	if request.Name != nil {
		profile.Name = *request.Name
	}
	if request.DueDate != nil {
		if due, err := time.Parse(dateLayout, *request.DueDate); err == nil {
			unix := due.Unix()
			profile.DueDateAt = &unix
		}
	}
	if request.Interests != nil {
		profile.Interests = *request.Interests
	}
	if request.Lifestyle != nil {
		profile.Lifestyle = *request.Lifestyle
	}

	// City or wall-clock changes re-anchor the stored UTC slot.
	city := profile.City
	if request.City != nil {
		city = *request.City
	}
	if request.PreferredTime != nil && !utils.ValidWallClock(*request.PreferredTime) {
		return nil, utils.ErrInvalidTime
	}
	if request.PreferredTime != nil || request.City != nil {
		now := p.clock.Now()
		local := utils.UTCToLocal(profile.PreferredTimeUTC, profile.City, now)
		if request.PreferredTime != nil {
			local = *request.PreferredTime
		}
		profile.PreferredTimeUTC = utils.LocalToUTC(local, city, now)
	}
	profile.City = city

	if err := p.profileRepo.Update(ctx, profile); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return p.toResponse(profile), nil
}

func (p *ProfileService) toResponse(profile *db_models.Profile) *response_models.ProfileResponse {
	now := p.clock.Now()

	resp := &response_models.ProfileResponse{
		PhoneNumber:        profile.PhoneNumber,
		Name:               profile.Name,
		Interests:          profile.Interests,
		Lifestyle:          profile.Lifestyle,
		City:               profile.City,
		PreferredTimeLocal: utils.UTCToLocal(profile.PreferredTimeUTC, profile.City, now),
		SubscriptionStatus: string(profile.SubscriptionStatus),
		Tier:               string(profile.Tier),
		Credits:            profile.Credits,
		TrialEndsAt:        profile.TrialEndsAt,
	}

	if due := profile.DueDate(); due != nil {
		resp.DueDate = due.Format(dateLayout)
		if week, ok := utils.GestationalWeek(due, now); ok {
			displayWeek := utils.DisplayWeek(week)
			resp.GestationalWeek = displayWeek
			resp.BabySize = utils.FruitSize(displayWeek)
		}
	}

	return resp
}
