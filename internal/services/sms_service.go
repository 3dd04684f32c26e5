package services

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSenderInterface wraps the carrier gateway. Callers treat any error as
// "skip this profile, log, continue" — there is no retry layer.
type SMSSenderInterface interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg TwilioConfig) SMSSenderInterface {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &twilioSender{
		client: client,
		from:   cfg.FromNumber,
	}
}

func (t *twilioSender) Send(ctx context.Context, to, body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio send: no message sid returned")
	}

	return *resp.Sid, nil
}
