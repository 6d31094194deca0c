// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

var (
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTKey        []byte
	JWTExpiration time.Duration

	// Optional LLM credential. When empty the action generator skips the
	// model call entirely and uses its deterministic rules.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMTimeout    time.Duration

	RetentionDays int
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	MongoDatabase = os.Getenv("MONGO_DATABASE")
	if MongoDatabase == "" {
		MongoDatabase = "pmjournal"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	JWTExpiration = dur

	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	OpenAIModel = os.Getenv("OPENAI_MODEL")
	if OpenAIModel == "" {
		OpenAIModel = "gpt-4o-mini"
	}

	OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	if OpenAIBaseURL == "" {
		OpenAIBaseURL = "https://api.openai.com/v1"
	}

	LLMTimeout = 5 * time.Second
	if timeoutStr := os.Getenv("LLM_TIMEOUT"); timeoutStr != "" {
		parsed, err := time.ParseDuration(timeoutStr)
		if err != nil {
			log.Printf("Invalid LLM_TIMEOUT: %s, using 5s", timeoutStr)
		} else {
			LLMTimeout = parsed
		}
	}

	RetentionDays = 60
	if daysStr := os.Getenv("RETENTION_DAYS"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid RETENTION_DAYS: %s, using 60", daysStr)
		} else {
			RetentionDays = parsed
		}
	}
}
