package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	PORT          string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	JWT_SECRET    string
	BREVO_API_KEY string
	BREVO_URL     string
	EMAIL_USER    string
	CONTACT_EMAIL string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	FRONTEND_URL  string
	STATIC_DIR    string
	ENVIRONMENT   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:          getEnv("PORT", "3000"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       getEnv("DB_PORT", "5432"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		BREVO_API_KEY: os.Getenv("BREVO_API_KEY"),
		BREVO_URL:     getEnv("BREVO_URL", "https://api.brevo.com"),
		EMAIL_USER:    os.Getenv("EMAIL_USER"),
		CONTACT_EMAIL: os.Getenv("CONTACT_EMAIL"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		FRONTEND_URL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		STATIC_DIR:    getEnv("STATIC_DIR", "dist"),
		ENVIRONMENT:   getEnv("ENVIRONMENT", "development"),
		LOG_LEVEL:     getEnv("LOG_LEVEL", "info"),
	}

	if config.JWT_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func (c *Config) IsProduction() bool {
	return c.ENVIRONMENT == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
