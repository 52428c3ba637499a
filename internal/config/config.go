package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every tunable the server reads from the environment.
type Config struct {
	Port         int
	OpenAIAPIKey string
	WhisperModel string
	ChatModel    string
	SourceLang   string
	ChunkSeconds int
	UploadDir    string
	PublicDir    string
	LogMode      string
}

// FromEnv builds a Config from the process environment, applying the
// deployment defaults (Punjabi source speech, 10-minute chunks).
func FromEnv() Config {
	return Config{
		Port:         envInt("PORT", 3001),
		OpenAIAPIKey: envStr("OPENAI_API_KEY", ""),
		WhisperModel: envStr("KATHA_WHISPER_MODEL", "whisper-1"),
		ChatModel:    envStr("KATHA_CHAT_MODEL", "gpt-4o-mini"),
		SourceLang:   envStr("KATHA_SOURCE_LANG", "pa"),
		ChunkSeconds: envInt("KATHA_CHUNK_SECONDS", 600),
		UploadDir:    envStr("KATHA_UPLOAD_DIR", "tmp"),
		PublicDir:    envStr("KATHA_PUBLIC_DIR", ""),
		LogMode:      envStr("LOG_MODE", "development"),
	}
}

func envStr(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
