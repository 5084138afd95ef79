package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	JWTTTL        time.Duration

	CloudinaryURL   string
	SendgridAPIKey  string
	EmailSender     string
	EmailSenderName string
	RollbarToken    string

	AdminEmail    string
	AdminPassword string
	AdminFullName string

	CertificatePassPercent int
	AttemptIdleTimeout     time.Duration
	AnswerCacheTTL         time.Duration
	FrontendURL            string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read .env file: %v", err)
		} else {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("ENV", "DEV")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_TTL", 72*time.Hour)
	v.SetDefault("EMAIL_SENDER_NAME", "Tutoring Center")
	v.SetDefault("ADMIN_FULL_NAME", "Center Administrator")
	v.SetDefault("CERTIFICATE_PASS_PERCENT", 80)
	v.SetDefault("ATTEMPT_IDLE_TIMEOUT", 2*time.Hour)
	v.SetDefault("ANSWER_CACHE_TTL", 24*time.Hour)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Env:                    v.GetString("ENV"),
		Port:                   v.GetString("PORT"),
		DatabaseURL:            v.GetString("DATABASE_URL"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTTTL:                 v.GetDuration("JWT_TTL"),
		CloudinaryURL:          v.GetString("CLOUDINARY_URL"),
		SendgridAPIKey:         v.GetString("SENDGRID_API_KEY"),
		EmailSender:            v.GetString("EMAIL_SENDER"),
		EmailSenderName:        v.GetString("EMAIL_SENDER_NAME"),
		RollbarToken:           v.GetString("ROLLBAR_TOKEN"),
		AdminEmail:             v.GetString("ADMIN_EMAIL"),
		AdminPassword:          v.GetString("ADMIN_PASSWORD"),
		AdminFullName:          v.GetString("ADMIN_FULL_NAME"),
		CertificatePassPercent: v.GetInt("CERTIFICATE_PASS_PERCENT"),
		AttemptIdleTimeout:     v.GetDuration("ATTEMPT_IDLE_TIMEOUT"),
		AnswerCacheTTL:         v.GetDuration("ANSWER_CACHE_TTL"),
		FrontendURL:            v.GetString("FRONTEND_URL"),
	}
}
