package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bumpline/internal/models/db_models"
	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

const (
	codeLength = 6
	codeTTL    = 10 * time.Minute
)

type AuthServiceInterface interface {
	RequestCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (string, error)
}

type AuthService struct {
	codeRepo repositories.VerificationCodeRepository
	sender   SMSSenderInterface
	clock    utils.Clock
}

func NewAuthService(
	codeRepo repositories.VerificationCodeRepository,
	sender SMSSenderInterface,
	clock utils.Clock,
) AuthServiceInterface {
	return &AuthService{
		codeRepo: codeRepo,
		sender:   sender,
		clock:    clock,
	}
}

func (a *AuthService) RequestCode(ctx context.Context, phone string) error {
	phone = NormalizePhone(phone)
	if phone == "" {
		return utils.ErrInvalidPhone
	}

	code, err := utils.GenerateOtpCode(codeLength)
	if err != nil {
		return utils.ErrDatabaseError
	}

	hash, err := utils.HashCode(code)
	if err != nil {
		return utils.ErrDatabaseError
	}

	record := &db_models.VerificationCode{
		PhoneNumber: phone,
		CodeHash:    hash,
		ExpiresAt:   a.clock.Now().Add(codeTTL).Unix(),
	}
	if err := a.codeRepo.Insert(ctx, record); err != nil {
		return utils.ErrDatabaseError
	}

	body := fmt.Sprintf("Your bumpline sign-in code is %s. It expires in 10 minutes.", code)
	if _, err := a.sender.Send(ctx, phone, body); err != nil {
		log.Printf("Error sending verification code to %s: %v", phone, err)
		return err
	}

	return nil
}

func (a *AuthService) VerifyCode(ctx context.Context, phone, code string) (string, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return "", utils.ErrInvalidPhone
	}

	record, err := a.codeRepo.FindLatestValid(ctx, phone, a.clock.Now().Unix())
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if record == nil {
		return "", utils.ErrInvalidCode
	}

	if err := utils.CompareCode(record.CodeHash, code); err != nil {
		return "", utils.ErrInvalidCode
	}

	// Single-use: losing the mark-used race means someone else already
	// consumed this code.
	consumed, err := a.codeRepo.MarkUsed(ctx, record.ID.String())
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if !consumed {
		return "", utils.ErrInvalidCode
	}

	token, err := utils.CreateToken(phone)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	return token, nil
}

// NormalizePhone strips formatting characters and validates a rough E.164
// shape. Returns "" when the input cannot be a phone number.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '+':
			return r
		default:
			return -1
		}
	}, phone)

	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return ""
	}
	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+" + cleaned
	}
	return cleaned
}
