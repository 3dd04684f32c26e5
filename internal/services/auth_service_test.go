package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bumpline/internal/repositories"
	"bumpline/pkg/utils"
)

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeSender, *testClock) {
	utils.SetJWTKey("auth-test-secret")
	db := newTestDB(t)
	sender := newFakeSender()
	clock := newTestClock(time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC))
	svc := NewAuthService(repositories.NewVerificationCodeRepository(db), sender, clock)
	return svc, sender, clock
}

// sentCode pulls the six-digit code out of the most recent message to a
// number.
func sentCode(t *testing.T, sender *fakeSender, phone string) string {
	t.Helper()
	msgs := sender.messagesTo(phone)
	if len(msgs) == 0 {
		t.Fatalf("no verification message sent to %s", phone)
	}
	match := codePattern.FindStringSubmatch(msgs[len(msgs)-1].Body)
	if match == nil {
		t.Fatalf("no code found in message %q", msgs[len(msgs)-1].Body)
	}
	return match[1]
}

func TestRequestCodeSendsSixDigits(t *testing.T) {
	svc, sender, _ := newAuthFixture(t)

	if err := svc.RequestCode(context.Background(), "+1 (555) 000-1234"); err != nil {
		t.Fatalf("request code: %v", err)
	}
	code := sentCode(t, sender, "+15550001234")
	if len(code) != 6 {
		t.Errorf("code length = %d, want 6", len(code))
	}
}

func TestVerifyCodeIssuesToken(t *testing.T) {
	svc, sender, _ := newAuthFixture(t)
	phone := "+15550001234"

	if err := svc.RequestCode(context.Background(), phone); err != nil {
		t.Fatalf("request code: %v", err)
	}

	token, err := svc.VerifyCode(context.Background(), phone, sentCode(t, sender, phone))
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Phone != phone {
		t.Errorf("token phone = %s, want %s", claims.Phone, phone)
	}
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	phone := "+15550001234"

	if err := svc.RequestCode(context.Background(), phone); err != nil {
		t.Fatalf("request code: %v", err)
	}

	if _, err := svc.VerifyCode(context.Background(), phone, "000000"); err != utils.ErrInvalidCode {
		t.Errorf("wrong code error = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyCodeIsSingleUse(t *testing.T) {
	svc, sender, _ := newAuthFixture(t)
	phone := "+15550001234"

	if err := svc.RequestCode(context.Background(), phone); err != nil {
		t.Fatalf("request code: %v", err)
	}
	code := sentCode(t, sender, phone)

	if _, err := svc.VerifyCode(context.Background(), phone, code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := svc.VerifyCode(context.Background(), phone, code); err != utils.ErrInvalidCode {
		t.Errorf("second verify error = %v, want ErrInvalidCode", err)
	}
}

func TestVerifyCodeExpires(t *testing.T) {
	svc, sender, clock := newAuthFixture(t)
	phone := "+15550001234"

	if err := svc.RequestCode(context.Background(), phone); err != nil {
		t.Fatalf("request code: %v", err)
	}
	code := sentCode(t, sender, phone)

	clock.Advance(11 * time.Minute)
	if _, err := svc.VerifyCode(context.Background(), phone, code); err != utils.ErrInvalidCode {
		t.Errorf("expired code error = %v, want ErrInvalidCode", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+15550001234", "+15550001234"},
		{"1 (555) 000-1234", "+15550001234"},
		{"555-0000", "+5550000"},
		{"12345", ""},
		{"not a number", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
