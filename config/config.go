// Package config exposes environment-driven configuration for the YaMDb API.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const name = "api-yamdb"

var version = "2.1.0"

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return name
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("YAMDB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("YAMDB_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("YAMDB_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("YAMDB_PORT"))
	if err != nil || port <= 0 {
		return 8000
	}
	return port
}

func GetBasePath() string {
	basePath := os.Getenv("YAMDB_BASE_PATH")
	if basePath == "" {
		basePath = "/api/v1"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimSuffix(basePath, "/")
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("YAMDB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("YAMDB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetTokenSecret returns the HMAC key used to sign access tokens.
// Falls back to an obviously insecure default so a fresh checkout still runs.
func GetTokenSecret() string {
	secret := os.Getenv("YAMDB_TOKEN_SECRET")
	if secret == "" {
		secret = "insecure-dev-secret"
	}
	return secret
}

func GetMailFrom() string {
	from := os.Getenv("YAMDB_MAIL_FROM")
	if from == "" {
		from = "admin@yamdb.blog"
	}
	return from
}

// GetSMTPAddr returns the host:port of the SMTP relay, or "" when mail
// delivery should fall back to the log-only mailer.
func GetSMTPAddr() string {
	return os.Getenv("YAMDB_SMTP_ADDR")
}

func GetSMTPUsername() string {
	return os.Getenv("YAMDB_SMTP_USERNAME")
}

func GetSMTPPassword() string {
	return os.Getenv("YAMDB_SMTP_PASSWORD")
}
