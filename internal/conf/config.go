// config.go: This file contains the configuration for the frigate-config-builder
// application. It defines the settings struct and functions to load the settings.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
)

// DetectorSettings selects the Frigate object detector backend.
type DetectorSettings struct {
	Type   string // detector backend: edgetpu, cpu, openvino, tensorrt, onnx, yolov9 (0.17+)
	Device string // detector device, e.g. "usb" for Coral, "0" for GPU index
}

// FrigateSettings describes the target Frigate engine.
type FrigateSettings struct {
	Version           string           // target Frigate version tag: "0.14" or "0.17"
	Detector          DetectorSettings // detector backend selection
	Hwaccel           string           // ffmpeg hardware acceleration: vaapi, cuda, qsv, rkmpp, v4l2m2m, none
	NetworkInterfaces []string         // interfaces reported in the telemetry section
}

// MQTTSettings holds broker connection settings for the generated config.
type MQTTSettings struct {
	Auto     bool   // auto-detect broker settings from the host directory service
	Host     string // broker host, used when Auto is false or detection fails
	Port     int    // broker port
	Username string // broker username
	Password string // broker password
}

// BirdseyeSettings configures the multi-camera mosaic view.
type BirdseyeSettings struct {
	Enabled bool   // true to include a birdseye section
	Mode    string // "continuous", "motion" or "objects"
}

// GenAISettings configures the generative-AI provider (Frigate 0.17+ only).
type GenAISettings struct {
	Enabled  bool   // true to include genai sections
	Provider string // ollama, gemini, openai or azure_openai
	Model    string // provider model name
	APIKey   string // provider API key, treated as a secret
	BaseURL  string // provider base URL for self-hosted providers
}

// FeatureSettings holds the optional Frigate feature toggles.
type FeatureSettings struct {
	AudioDetection       bool          // enable audio event detection
	FaceRecognition      bool          // enable face recognition
	FaceRecognitionModel string        // "small" or "large"
	SemanticSearch       bool          // enable semantic search
	SemanticSearchModel  string        // "small" or "large"
	LPR                  bool          // enable license plate recognition
	BirdClassification   bool          // enable bird classification
	Birdseye             BirdseyeSettings
	GenAI                GenAISettings
}

// RetentionSettings holds retention durations per tier, in days.
type RetentionSettings struct {
	Alerts     int // days to retain alert recordings
	Detections int // days to retain detection recordings
	Motion     int // days to retain motion recordings
	Snapshots  int // days to retain snapshots
}

// ManualCamera is a fully user-declared camera, bypassing discovery.
type ManualCamera struct {
	Name         string // camera name, normalized before use
	FriendlyName string // display name, defaults to Name
	RecordURL    string // required full-resolution stream URL
	DetectURL    string // optional detection stream URL, defaults to RecordURL
	LiveViewURL  string // optional live view URL, derived from RecordURL when empty
	Width        int    // detect stream width, default 640
	Height       int    // detect stream height, default 360
	FPS          int    // detect stream fps, default 5
	Area         string // optional grouping hint
}

// Credential is a username/password pair used for per-host overrides.
type Credential struct {
	Username string
	Password string
}

// CameraSettings controls camera selection and manual declarations.
type CameraSettings struct {
	Selected            []string              // camera ids to include, empty selects all
	ExcludeUnavailable  bool                  // drop cameras that were unavailable at discovery time
	Manual              []ManualCamera        // manually declared cameras
	CredentialOverrides map[string]Credential // per-host credential overrides, keyed by host
}

// GroupSettings controls camera group derivation.
type GroupSettings struct {
	FromAreas bool                // derive groups automatically from camera areas
	Manual    map[string][]string // user-declared groups, win on name collision
}

// OutputSettings controls where the generated document goes.
type OutputSettings struct {
	Path          string // file path for the generated config
	FrigateURL    string // Frigate API base URL for pushing, empty disables push
	AutoPush      bool   // push to Frigate after generation
	RestartOnPush bool   // restart Frigate after a successful push
}

// LoggingSettings controls optional file logging.
type LoggingSettings struct {
	File string // path to a rotating JSON log file, empty disables file logging
}

// DirectorySettings locates the host directory inventory for standalone runs.
type DirectorySettings struct {
	Snapshot string // path to a directory snapshot JSON export, empty for none
}

// ObservabilitySettings controls the diagnostics metrics endpoint.
type ObservabilitySettings struct {
	Enabled bool   // expose prometheus metrics
	Listen  string // listen address and port of the metrics endpoint
}

// Settings is the root of the configuration tree.
type Settings struct {
	Debug bool // enable debug logging

	Logging       LoggingSettings
	Frigate       FrigateSettings
	Directory     DirectorySettings
	MQTT          MQTTSettings
	Features      FeatureSettings
	Retention     RetentionSettings
	Cameras       CameraSettings
	Groups        GroupSettings
	Output        OutputSettings
	Observability ObservabilitySettings
}

var (
	settingsInstance *Settings
	settingsOnce     sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration from disk (or defaults) and returns the settings.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal-settings").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()
	return settings, nil
}

func initViper() error {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.New(err).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("operation", "read-config").
				Build()
		}
		// No config file is fine, defaults and flags carry the configuration.
	}

	return nil
}

// GetDefaultConfigPaths returns the default configuration paths for the
// current operating system, following standard conventions.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case "windows":
		return []string{
			".",
			filepath.Join(homeDir, "AppData", "Roaming", "frigate-config-builder"),
		}, nil
	default:
		return []string{
			".",
			filepath.Join(homeDir, ".config", "frigate-config-builder"),
			"/etc/frigate-config-builder",
		}, nil
	}
}

// Setting returns the shared settings instance, loading it on first use.
func Setting() *Settings {
	settingsOnce.Do(func() {
		settingsMutex.RLock()
		loaded := settingsInstance != nil
		settingsMutex.RUnlock()
		if !loaded {
			if _, err := Load(); err != nil {
				panic(fmt.Sprintf("error loading settings: %v", err))
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
