package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	PostgresURL string `envconfig:"POSTGRES_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	CronSecret  string `envconfig:"CRON_SECRET" required:"true"`

	// Twilio
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	TwilioFromNumber string `envconfig:"TWILIO_FROM_NUMBER" required:"true"`

	// Stripe
	StripeSecretKey      string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	StripeWebhookSecret  string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	StripePriceCredits50 string `envconfig:"STRIPE_PRICE_CREDITS_50" required:"true"`
	StripePriceUnlimited string `envconfig:"STRIPE_PRICE_UNLIMITED" required:"true"`
	CheckoutSuccessURL   string `envconfig:"CHECKOUT_SUCCESS_URL" default:"https://bumpline.app/welcome"`
	CheckoutCancelURL    string `envconfig:"CHECKOUT_CANCEL_URL" default:"https://bumpline.app/plans"`

	// Generative text
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Trial
	TrialCredits int `envconfig:"TRIAL_CREDITS" default:"5"`
	TrialDays    int `envconfig:"TRIAL_DAYS" default:"7"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
