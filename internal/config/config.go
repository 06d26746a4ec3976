// Package config resolves the static process configuration for the SafeGate monitor.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all settings resolved at process start.
type Config struct {
	SerialPort          string
	BaudRate            int
	ModelPath           string
	ClassNamesPath      string
	CameraIndex         int
	TargetFPS           int
	FrameSkip           int // process every Nth captured frame
	ConfidenceThreshold float64
	NMSThreshold        float64
	HTTPAddr            string // empty disables the monitor server
	DBPath              string // empty disables the event log
	HookCmd             string // empty disables the transition hook
	HookTimeoutMs       int
	WindowTitle         string
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory. Missing keys fall back to defaults.
func Load() *Config {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	return &Config{
		SerialPort:          getEnv("SERIAL_PORT", "/dev/ttyUSB0"),
		BaudRate:            getEnvAsInt("BAUD_RATE", 115200),
		ModelPath:           getEnv("MODEL_PATH", "models/safety.onnx"),
		ClassNamesPath:      getEnv("CLASS_NAMES", ""),
		CameraIndex:         getEnvAsInt("CAMERA_INDEX", 0),
		TargetFPS:           getEnvAsInt("TARGET_FPS", 30),
		FrameSkip:           getEnvAsInt("FRAME_SKIP", 2),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.5),
		NMSThreshold:        getEnvAsFloat("NMS_THRESHOLD", 0.45),
		HTTPAddr:            getEnv("HTTP_ADDR", ""),
		DBPath:              getEnv("DB_PATH", ""),
		HookCmd:             getEnv("HOOK_CMD", ""),
		HookTimeoutMs:       getEnvAsInt("HOOK_TIMEOUT_MS", 5000),
		WindowTitle:         getEnv("WINDOW_TITLE", "SafeGate - Safety Equipment Monitor"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
