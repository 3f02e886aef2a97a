package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Decap Bridge")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

// GetLogLevel returns a zerolog level name ("debug", "info", ...).
func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
