// Package generator renders the camera catalog and configuration snapshot
// into the target engine's versioned YAML document.
package generator

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/errors"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
	"github.com/ojiudezue/frigate-config-builder/internal/mqtt"
)

// Package-level logger for generation events.
var logger = logging.ForService("generator")

// Generate renders the complete configuration document from the catalog, the
// settings snapshot and the resolved broker connection. Generation is a
// single fixed-order pass: build every section, prune absent values, then
// serialize. Any section failure aborts the whole pass, because a partially
// valid document is unsafe to hand to the target engine.
func Generate(catalog []camera.Camera, s *conf.Settings, broker mqtt.BrokerSettings) ([]byte, error) {
	profile, ok := versionProfiles[s.Frigate.Version]
	if !ok {
		return nil, errors.Newf("unsupported target version %q", s.Frigate.Version).
			Component("generator").
			Category(errors.CategoryGeneration).
			Context("section", "version").
			Build()
	}

	doc := NewMap()

	doc.Set("mqtt", buildMQTT(broker))
	doc.Set("detectors", buildDetectors(s))
	doc.Set("ffmpeg", profile.ffmpeg(s))

	// The target engine ships with detection disabled; the global detect
	// section must always enable it explicitly.
	doc.Set("detect", profile.detect(s))

	doc.Set("record", profile.record(s))
	doc.Set("snapshots", buildSnapshots(s))
	doc.Set("review", profile.review(s))

	if s.Features.AudioDetection {
		doc.Set("audio", buildAudio(s))
	}
	if s.Features.Birdseye.Enabled {
		doc.Set("birdseye", profile.birdseye(s))
	}
	if s.Features.SemanticSearch {
		doc.Set("semantic_search", buildSemanticSearch(s))
	}
	if s.Features.FaceRecognition {
		doc.Set("face_recognition", buildFaceRecognition(s))
	}
	if s.Features.LPR {
		doc.Set("lpr", NewMap().Set("enabled", true))
	}
	if s.Features.BirdClassification {
		doc.Set("classification", NewMap().
			Set("bird", NewMap().Set("enabled", true)))
	}

	// The generative-AI provider block is only legal under 0.17.
	if s.Frigate.Version == conf.VersionV017 && s.Features.GenAI.Enabled {
		doc.Set("genai", buildGenAI(s))
		doc.Set("objects", buildObjectsWithGenAI(s))
	}

	doc.Set("go2rtc", buildLiveViewStreams(catalog))
	doc.Set("cameras", buildCameras(catalog, s))

	if groups := BuildGroups(catalog, s); groups.Len() > 0 {
		doc.Set("camera_groups", groups)
	}

	doc.Set("telemetry", buildTelemetry(s))
	doc.Set("version", s.Frigate.Version)

	out, err := marshal(doc)
	if err != nil {
		return nil, errors.New(err).
			Component("generator").
			Category(errors.CategorySerialization).
			Context("section", "document").
			Build()
	}

	logger.Info("generated configuration document",
		"cameras", len(catalog), "version", s.Frigate.Version, "bytes", len(out))
	return out, nil
}

func marshal(doc *Map) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildMQTT renders the broker connection section. Empty credentials are
// omitted, not emitted as null.
func buildMQTT(broker mqtt.BrokerSettings) *Map {
	m := NewMap().
		Set("host", broker.Host).
		Set("port", broker.Port)
	m.SetNonEmpty("user", broker.Username)
	m.SetNonEmpty("password", broker.Password)
	return m
}

// buildLiveViewStreams renders the live-view stream map keyed by camera name.
func buildLiveViewStreams(catalog []camera.Camera) *Map {
	streams := NewMap()
	for i := range catalog {
		cam := &catalog[i]
		if cam.LiveViewURL != "" {
			streams.Set(cam.Name, []string{cam.LiveViewURL})
		}
	}
	return NewMap().Set("streams", streams)
}

// buildCameras renders the per-camera map. Detect dimensions are the native
// dimensions of the stream assigned the detect role; the engine wastes CPU
// resizing mismatched streams.
func buildCameras(catalog []camera.Camera, s *conf.Settings) *Map {
	cameras := NewMap()
	hwaccelPreset := HwaccelPreset(s.Frigate.Hwaccel)

	for i := range catalog {
		cam := &catalog[i]

		ffmpeg := NewMap().
			Set("inputs", buildInputs(cam)).
			Set("hwaccel_args", hwaccelPreset).
			Set("output_args", NewMap().Set("record", RecordPreset(cam.Source)))

		cameras.Set(cam.Name, NewMap().
			Set("enabled", true).
			Set("ffmpeg", ffmpeg).
			// Per-camera detection must also be enabled explicitly.
			Set("detect", NewMap().
				Set("enabled", true).
				Set("width", cam.Width).
				Set("height", cam.Height).
				Set("fps", cam.FPS)))
	}
	return cameras
}

// buildInputs assigns stream roles. Distinct record and detect endpoints get
// two entries (record+audio, then detect); identical endpoints collapse into
// a single entry carrying all three roles.
func buildInputs(cam *camera.Camera) []*Map {
	if cam.DetectURL != "" && cam.DetectURL != cam.RecordURL {
		return []*Map{
			NewMap().
				Set("path", cam.RecordURL).
				Set("roles", []string{"record", "audio"}),
			NewMap().
				Set("path", cam.DetectURL).
				Set("roles", []string{"detect"}),
		}
	}
	return []*Map{
		NewMap().
			Set("path", cam.RecordURL).
			Set("roles", []string{"record", "audio", "detect"}),
	}
}
