package configs

import (
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

type ENV struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	Port          string
	BaseURL       string
	AdminEmail    string
	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		zlog.Warn().Msg("no .env file found, relying on process environment")
	}

	env := ENV{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		Port:          os.Getenv("APP_PORT"),
		BaseURL:       os.Getenv("BASE_URL"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     os.Getenv("EMAIL_PORT"),
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
	}
	if env.Port == "" {
		env.Port = ":8080"
	}
	if env.BaseURL == "" {
		env.BaseURL = "http://localhost:8080"
	}
	if env.EmailFrom == "" {
		env.EmailFrom = env.EmailUsername
	}
	return env
}
