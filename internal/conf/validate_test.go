package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Frigate: FrigateSettings{
			Version:  VersionV014,
			Detector: DetectorSettings{Type: DetectorEdgeTPU, Device: "usb"},
			Hwaccel:  HwaccelVAAPI,
		},
		MQTT: MQTTSettings{Host: "localhost", Port: 1883},
		Features: FeatureSettings{
			FaceRecognitionModel: ModelSizeLarge,
			SemanticSearchModel:  ModelSizeLarge,
			Birdseye:             BirdseyeSettings{Enabled: true, Mode: BirdseyeModeObjects},
		},
		Retention: RetentionSettings{Alerts: 30, Detections: 30, Motion: 7, Snapshots: 30},
		Output:    OutputSettings{Path: "frigate.yml"},
	}
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:    "unsupported version",
			mutate:  func(s *Settings) { s.Frigate.Version = "0.12" },
			wantErr: "is not supported",
		},
		{
			name:    "yolov9 rejected on 0.14",
			mutate:  func(s *Settings) { s.Frigate.Detector.Type = DetectorYOLOv9 },
			wantErr: "is not valid for Frigate 0.14",
		},
		{
			name:    "empty hwaccel",
			mutate:  func(s *Settings) { s.Frigate.Hwaccel = "" },
			wantErr: "frigate.hwaccel must not be empty",
		},
		{
			name: "genai requires 0.17",
			mutate: func(s *Settings) {
				s.Features.GenAI = GenAISettings{Enabled: true, Provider: GenAIProviderOllama}
			},
			wantErr: "features.genai requires Frigate 0.17",
		},
		{
			name: "unknown genai provider",
			mutate: func(s *Settings) {
				s.Frigate.Version = VersionV017
				s.Features.GenAI = GenAISettings{Enabled: true, Provider: "skynet"}
			},
			wantErr: "features.genai.provider",
		},
		{
			name:    "bad model size",
			mutate:  func(s *Settings) { s.Features.SemanticSearchModel = "medium" },
			wantErr: "features.semanticsearchmodel",
		},
		{
			name:    "bad birdseye mode",
			mutate:  func(s *Settings) { s.Features.Birdseye.Mode = "panorama" },
			wantErr: "features.birdseye.mode",
		},
		{
			name:    "negative retention",
			mutate:  func(s *Settings) { s.Retention.Motion = -1 },
			wantErr: "retention.motion must not be negative",
		},
		{
			name: "manual camera missing record url",
			mutate: func(s *Settings) {
				s.Cameras.Manual = []ManualCamera{{Name: "shed"}}
			},
			wantErr: "missing a record url",
		},
		{
			name:    "mqtt port out of range",
			mutate:  func(s *Settings) { s.MQTT.Port = 70000 },
			wantErr: "mqtt.port",
		},
		{
			name:    "empty output path",
			mutate:  func(s *Settings) { s.Output.Path = "" },
			wantErr: "output.path must not be empty",
		},
		{
			name: "autopush without url",
			mutate: func(s *Settings) {
				s.Output.AutoPush = true
				s.Output.FrigateURL = ""
			},
			wantErr: "output.autopush requires output.frigateurl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSettingsYolov9On017(t *testing.T) {
	s := validSettings()
	s.Frigate.Version = VersionV017
	s.Frigate.Detector.Type = DetectorYOLOv9
	require.NoError(t, ValidateSettings(s))
}

func TestValidateSettingsCollectsAllProblems(t *testing.T) {
	s := validSettings()
	s.Frigate.Version = "0.12"
	s.Output.Path = ""
	err := ValidateSettings(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not supported")
	assert.Contains(t, err.Error(), "output.path must not be empty")
}
