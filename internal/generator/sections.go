package generator

import (
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

// versionProfile holds the section builders that differ between the two
// supported schema versions. Keying builders off the version through this
// table keeps each builder pure and free of nested version conditionals.
type versionProfile struct {
	detect   func(*conf.Settings) *Map
	ffmpeg   func(*conf.Settings) *Map
	record   func(*conf.Settings) *Map
	review   func(*conf.Settings) *Map
	birdseye func(*conf.Settings) *Map
}

var versionProfiles = map[string]versionProfile{
	conf.VersionV014: {
		detect:   buildDetectV014,
		ffmpeg:   buildFfmpegV014,
		record:   buildRecordV014,
		review:   buildReviewV014,
		birdseye: buildBirdseyeV014,
	},
	conf.VersionV017: {
		detect:   buildDetectV017,
		ffmpeg:   buildFfmpegV017,
		record:   buildRecordV017,
		review:   buildReviewV017,
		birdseye: buildBirdseyeV017,
	},
}

// --- detectors ---

func buildDetectors(s *conf.Settings) *Map {
	return NewMap().Set("default", NewMap().
		Set("type", s.Frigate.Detector.Type).
		Set("device", s.Frigate.Detector.Device))
}

// --- ffmpeg ---

func buildFfmpegV014(s *conf.Settings) *Map {
	return NewMap().Set("hwaccel_args", HwaccelPreset(s.Frigate.Hwaccel))
}

func buildFfmpegV017(s *conf.Settings) *Map {
	// 0.17 adds a GPU index next to the acceleration preset.
	return buildFfmpegV014(s).Set("gpu", 0)
}

// --- detect ---

// Detection is disabled by default in the target engine, so every detect
// block must carry an explicit enabled flag.
func buildDetectV014(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("fps", 5)
}

func buildDetectV017(s *conf.Settings) *Map {
	return buildDetectV014(s).Set("stationary", NewMap().
		Set("classifier", true).
		Set("interval", 50).
		Set("threshold", 50))
}

// --- record ---

func retainBlock(days int) *Map {
	return NewMap().
		Set("days", days).
		Set("mode", "motion")
}

func eventTier(s *conf.Settings, days int) *Map {
	return NewMap().
		Set("pre_capture", 5).
		Set("post_capture", 5).
		Set("retain", retainBlock(days))
}

// buildRecordV014 expresses base retention as a single flat retain block.
func buildRecordV014(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("expire_interval", 60).
		Set("retain", retainBlock(s.Retention.Motion)).
		Set("alerts", eventTier(s, s.Retention.Alerts)).
		Set("detections", eventTier(s, s.Retention.Detections))
}

// buildRecordV017 replaces the flat retain block with independent continuous
// and motion tiers.
func buildRecordV017(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("expire_interval", 60).
		// Continuous days default to 0: keep only alerts/detections/motion.
		Set("continuous", NewMap().Set("days", 0)).
		Set("motion", NewMap().Set("days", s.Retention.Motion)).
		Set("alerts", eventTier(s, s.Retention.Alerts)).
		Set("detections", eventTier(s, s.Retention.Detections))
}

// --- review ---

func reviewBase() (alerts, detections *Map) {
	alerts = NewMap().
		Set("enabled", true).
		Set("labels", []string{"car", "person"})
	detections = NewMap().
		Set("enabled", true).
		Set("labels", []string{"car", "person"})
	return alerts, detections
}

func buildReviewV014(s *conf.Settings) *Map {
	alerts, detections := reviewBase()
	return NewMap().
		Set("alerts", alerts).
		Set("detections", detections)
}

func buildReviewV017(s *conf.Settings) *Map {
	alerts, detections := reviewBase()
	alerts.Set("cutoff_time", 40)
	detections.Set("cutoff_time", 30)

	review := NewMap().
		Set("alerts", alerts).
		Set("detections", detections)

	if s.Features.GenAI.Enabled {
		review.Set("genai", NewMap().
			Set("enabled", true).
			Set("alerts", true).
			Set("detections", false).
			Set("image_source", "preview"))
	}
	return review
}

// --- snapshots ---

func buildSnapshots(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("clean_copy", true).
		Set("timestamp", true).
		Set("bounding_box", true).
		Set("retain", NewMap().Set("default", s.Retention.Snapshots))
}

// --- audio ---

func buildAudio(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("listen", []string{"bark", "fire_alarm", "scream", "speech", "yell"})
}

// --- birdseye ---

func buildBirdseyeV014(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("mode", s.Features.Birdseye.Mode).
		Set("width", 2560).
		Set("height", 1440).
		Set("quality", 8)
}

func buildBirdseyeV017(s *conf.Settings) *Map {
	return buildBirdseyeV014(s).Set("idle_heartbeat_fps", 0.0)
}

// --- ML features ---

func buildSemanticSearch(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("model_size", s.Features.SemanticSearchModel)
}

func buildFaceRecognition(s *conf.Settings) *Map {
	return NewMap().
		Set("enabled", true).
		Set("model_size", s.Features.FaceRecognitionModel)
}

// --- GenAI (0.17 only) ---

func buildGenAI(s *conf.Settings) *Map {
	genai := NewMap().Set("provider", s.Features.GenAI.Provider)
	genai.SetNonEmpty("model", s.Features.GenAI.Model)
	genai.SetNonEmpty("api_key", s.Features.GenAI.APIKey)
	genai.SetNonEmpty("base_url", s.Features.GenAI.BaseURL)
	return genai
}

// buildObjectsWithGenAI pairs the global provider block with per-object
// description generation.
func buildObjectsWithGenAI(s *conf.Settings) *Map {
	return NewMap().
		Set("track", []string{"person", "car", "dog", "cat"}).
		Set("genai", NewMap().
			Set("enabled", true).
			Set("use_snapshot", false).
			Set("prompt", "Describe the {label} in the sequence of images with as much detail as possible. Do not describe the background.").
			Set("objects", []string{"person", "car"}).
			Set("send_triggers", NewMap().Set("tracked_object_end", true)))
}

// --- telemetry ---

func buildTelemetry(s *conf.Settings) *Map {
	interfaces := s.Frigate.NetworkInterfaces
	if len(interfaces) == 0 {
		interfaces = []string{"eth0"}
	}
	return NewMap().Set("network_interfaces", interfaces)
}
