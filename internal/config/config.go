package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EMAIL_PROVIDER_SES      = "ses"
	EMAIL_PROVIDER_SENDGRID = "sendgrid"

	IMAGE_STORAGE_LOCAL      = "local"
	IMAGE_STORAGE_CLOUDINARY = "cloudinary"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"5000"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL    string `env:"POSTGRESQL_URL,required"`
	RedisURL         string `env:"REDIS_URL,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`

	// Reminder clock times are interpreted in this zone.
	TimeZone         string `env:"TIME_ZONE" envDefault:"UTC"`
	SchedulerEnabled bool   `env:"SCHEDULER_ENABLED" envDefault:"true"`
	SchedulerSpec    string `env:"SCHEDULER_SPEC" envDefault:"* * * * *"`

	AuthEnabled      bool   `env:"AUTH_ENABLED" envDefault:"false"`
	DefaultUserName  string `env:"DEFAULT_USER_NAME" envDefault:"Default User"`
	DefaultUserEmail string `env:"DEFAULT_USER_EMAIL" envDefault:"user@medremind.local"`
	DefaultUserPhone string `env:"DEFAULT_USER_PHONE"`

	EmailProvider            string `env:"EMAIL_PROVIDER" envDefault:"ses"`
	AwsRegion                string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey             string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey             string `env:"AWS_SECRET_KEY"`
	AwsEmailSender           string `env:"AWS_EMAIL_SENDER"`
	AwsEmailReminderTemplate string `env:"AWS_EMAIL_REMINDER_TEMPLATE" envDefault:"medication-reminder"`
	SendgridAPIKey           string `env:"SENDGRID_API_KEY"`
	SendgridFromEmail        string `env:"SENDGRID_FROM_EMAIL"`
	SendgridFromName         string `env:"SENDGRID_FROM_NAME" envDefault:"MedRemind"`

	TwilioAccountSid  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.2-90b-vision-preview"`

	ElevenlabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	ElevenlabsVoiceID string `env:"ELEVENLABS_VOICE_ID" envDefault:"EXAVITQu4vr4xnSDxMaL"`
	ElevenlabsBaseURL string `env:"ELEVENLABS_BASE_URL" envDefault:"https://api.elevenlabs.io"`

	ImageStorage     string `env:"IMAGE_STORAGE" envDefault:"local"`
	UploadsDir       string `env:"UPLOADS_DIR" envDefault:"uploads"`
	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	CloudinaryFolder string `env:"CLOUDINARY_FOLDER" envDefault:"medremind"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`

	location *time.Location
}

// Load reads the configuration from the environment. Variables from a .env
// file in the working directory are loaded first and never override the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid TIME_ZONE value: %w", err)
	}
	c.location = location

	switch c.EmailProvider {
	case EMAIL_PROVIDER_SES, EMAIL_PROVIDER_SENDGRID:
	default:
		return fmt.Errorf("invalid EMAIL_PROVIDER value %q", c.EmailProvider)
	}

	switch c.ImageStorage {
	case IMAGE_STORAGE_LOCAL:
	case IMAGE_STORAGE_CLOUDINARY:
		if c.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL must be set for cloudinary image storage")
		}
	default:
		return fmt.Errorf("invalid IMAGE_STORAGE value %q", c.ImageStorage)
	}

	if c.DefaultUserEmail == "" && !c.AuthEnabled {
		return fmt.Errorf("DEFAULT_USER_EMAIL must be set when authentication is disabled")
	}
	return nil
}

func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) IsTwilioConfigured() bool {
	return c.TwilioAccountSid != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func (c *Config) IsEmailConfigured() bool {
	switch c.EmailProvider {
	case EMAIL_PROVIDER_SES:
		return c.AwsAccessKey != "" && c.AwsSecretKey != "" && c.AwsEmailSender != ""
	case EMAIL_PROVIDER_SENDGRID:
		return c.SendgridAPIKey != "" && c.SendgridFromEmail != ""
	}
	return false
}
