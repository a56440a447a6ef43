package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once at startup from the environment (.env is autoloaded by main).
type Config struct {
	Port   int
	AppURL string
	AppEnv string

	LogMode string

	BusinessesTable    string
	ClientsTable       string
	ConversationsTable string
	DocumentsTable     string
	CountersTable      string
	MessagesTable      string

	S3Bucket   string
	S3Endpoint string
	PDFURLTTL  time.Duration

	TwilioAccountSID        string
	TwilioAuthToken         string
	TwilioPhoneNumber       string
	TwilioValidateSignature bool
	SMSMock                 bool

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	PaymentCurrency        string

	RedisAddr     string
	RedisPassword string
	TurnLockTTL   time.Duration
}

// Load reads every setting, applying local-friendly defaults.
func Load() Config {
	return Config{
		Port:    getenvInt("PORT", 8080),
		AppURL:  strings.TrimRight(getenvDefault("APP_URL", "http://localhost:8080"), "/"),
		AppEnv:  getenvDefault("APP_ENV", "development"),
		LogMode: getenvDefault("LOG_MODE", "development"),

		BusinessesTable:    getenvDefault("BUSINESSES_TABLE", "businesses"),
		ClientsTable:       getenvDefault("CLIENTS_TABLE", "clients"),
		ConversationsTable: getenvDefault("CONVERSATIONS_TABLE", "conversations"),
		DocumentsTable:     getenvDefault("DOCUMENTS_TABLE", "documents"),
		CountersTable:      getenvDefault("COUNTERS_TABLE", "document_counters"),
		MessagesTable:      getenvDefault("SMS_MESSAGES_TABLE", "sms_messages"),

		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),
		PDFURLTTL:  getenvDuration("PDF_URL_TTL", 7*24*time.Hour),

		TwilioAccountSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:         os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:       os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioValidateSignature: getenvBool("TWILIO_VALIDATE_SIGNATURE", false),
		SMSMock:                 getenvBool("SMS_MOCK", false),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     getenvBool("PAYMENT_GATEWAY_MOCK", false) || getenvBool("MERCADOPAGO_MOCK", false),
		PaymentCurrency:        getenvDefault("PAYMENT_CURRENCY", "USD"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		TurnLockTTL:   getenvDuration("TURN_LOCK_TTL", 10*time.Second),
	}
}

// OnboardingURL is sent to numbers that are not registered yet.
func (c Config) OnboardingURL() string {
	return c.AppURL + "/onboarding"
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// getenvBool accepts the same spellings as the payment mock switch: 1/true/yes/on/mock.
func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on", "mock":
		return true
	default:
		return false
	}
}
