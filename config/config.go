// Package config exposes the process configuration: environment variables
// with a SCHEMAHUB_ prefix, optionally backed by a TOML file for values an
// operator would rather keep on disk.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// fileConfig mirrors the optional TOML config file. Environment variables
// always win over file values.
type fileConfig struct {
	WebListen     string `toml:"webListen"`
	WebPort       int    `toml:"webPort"`
	WebBasePath   string `toml:"webBasePath"`
	WebDomain     string `toml:"webDomain"`
	CaptchaSecret string `toml:"captchaSecret"`
	SessionHours  int    `toml:"sessionHours"`
}

var (
	fileCfg     fileConfig
	fileCfgOnce sync.Once
)

func getFileConfig() *fileConfig {
	fileCfgOnce.Do(func() {
		path := os.Getenv("SCHEMAHUB_CONFIG")
		if path == "" {
			path = "schemahub.toml"
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			fmt.Fprintf(os.Stderr, "invalid config file %s: %v\n", path, err)
		}
	})
	return &fileCfg
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("SCHEMAHUB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SCHEMAHUB_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("SCHEMAHUB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/schemahub"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("SCHEMAHUB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetWebListen() string {
	listen := os.Getenv("SCHEMAHUB_WEB_LISTEN")
	if listen == "" {
		listen = getFileConfig().WebListen
	}
	return listen
}

func GetWebPort() int {
	if port, err := strconv.Atoi(os.Getenv("SCHEMAHUB_WEB_PORT")); err == nil && port > 0 {
		return port
	}
	if port := getFileConfig().WebPort; port > 0 {
		return port
	}
	return 3000
}

func GetWebBasePath() string {
	basePath := os.Getenv("SCHEMAHUB_WEB_BASE_PATH")
	if basePath == "" {
		basePath = getFileConfig().WebBasePath
	}
	if basePath == "" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

func GetWebDomain() string {
	domain := os.Getenv("SCHEMAHUB_WEB_DOMAIN")
	if domain == "" {
		domain = getFileConfig().WebDomain
	}
	return domain
}

// GetCaptchaSecret returns the Turnstile secret key. An empty value disables
// captcha verification entirely.
func GetCaptchaSecret() string {
	secret := os.Getenv("SCHEMAHUB_CAPTCHA_KEY")
	if secret == "" {
		secret = getFileConfig().CaptchaSecret
	}
	return secret
}

// GetSessionMaxAge returns the lifetime of a freshly minted session.
func GetSessionMaxAge() time.Duration {
	if hours, err := strconv.Atoi(os.Getenv("SCHEMAHUB_SESSION_HOURS")); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	if hours := getFileConfig().SessionHours; hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return 30 * 24 * time.Hour
}
