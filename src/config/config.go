package config

import (
	"fmt"
	"os"
)

// Config carries everything the process reads from the environment. It is
// loaded once in main and handed to each constructor; no package keeps its
// own copy of the environment.
type Config struct {
	DatabaseHost     string
	DatabasePort     string
	DatabaseSSLMode  string
	DatabaseTimezone string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string

	RedisURL    string
	KafkaBroker string

	S3AssetsBucket string
	AWSRegion      string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SMSFrom      string

	SecretsDir string
	TempDir    string
	JWTSecret  string
	APIEnv     string
	Port       string
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &Config{
		DatabaseHost:     os.Getenv("DATABASE_HOST"),
		DatabasePort:     os.Getenv("DATABASE_PORT"),
		DatabaseSSLMode:  os.Getenv("DATABASE_SSLMODE"),
		DatabaseTimezone: os.Getenv("DATABASE_TIMEZONE"),
		DatabaseUser:     os.Getenv("DATABASE_USER"),
		DatabasePassword: os.Getenv("DATABASE_PASSWORD"),
		DatabaseName:     os.Getenv("DATABASE_NAME"),
		RedisURL:         os.Getenv("REDIS_HOST"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		S3AssetsBucket:   os.Getenv("S3_ASSETS_BUCKET"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         os.Getenv("SMTP_PORT"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		SMSFrom:          os.Getenv("SMS_FROM"),
		SecretsDir:       os.Getenv("SECRETS_DIR"),
		TempDir:          os.Getenv("TEMP_DIR"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		APIEnv:           os.Getenv("API_ENV"),
		Port:             port,
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DatabaseHost, c.DatabaseUser, c.DatabasePassword, c.DatabaseName,
		c.DatabasePort, c.DatabaseSSLMode, c.DatabaseTimezone)
}
