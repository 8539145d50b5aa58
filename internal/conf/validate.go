// conf/validate.go settings validation
package conf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
)

// ValidateSettings checks the settings tree for values that would produce an
// invalid or unsafe Frigate configuration. Generation refuses to start on a
// validation error, so all problems are collected and reported at once.
func ValidateSettings(s *Settings) error {
	var problems []string

	if !slices.Contains(SupportedVersions(), s.Frigate.Version) {
		problems = append(problems, fmt.Sprintf(
			"frigate.version %q is not supported (expected one of %s)",
			s.Frigate.Version, strings.Join(SupportedVersions(), ", ")))
	}

	if !slices.Contains(DetectorTypesFor(s.Frigate.Version), s.Frigate.Detector.Type) {
		problems = append(problems, fmt.Sprintf(
			"frigate.detector.type %q is not valid for Frigate %s",
			s.Frigate.Detector.Type, s.Frigate.Version))
	}

	// Unknown hwaccel falls back to a generic preset during generation, but an
	// empty value is a configuration mistake worth failing on.
	if s.Frigate.Hwaccel == "" {
		problems = append(problems, "frigate.hwaccel must not be empty")
	}

	if s.Features.GenAI.Enabled {
		if s.Frigate.Version != VersionV017 {
			problems = append(problems, fmt.Sprintf(
				"features.genai requires Frigate %s, configured version is %s",
				VersionV017, s.Frigate.Version))
		}
		if !slices.Contains(GenAIProviders(), s.Features.GenAI.Provider) {
			problems = append(problems, fmt.Sprintf(
				"features.genai.provider %q is not supported", s.Features.GenAI.Provider))
		}
	}

	for _, size := range []struct{ key, value string }{
		{"features.facerecognitionmodel", s.Features.FaceRecognitionModel},
		{"features.semanticsearchmodel", s.Features.SemanticSearchModel},
	} {
		if size.value != ModelSizeSmall && size.value != ModelSizeLarge {
			problems = append(problems, fmt.Sprintf("%s %q must be %q or %q",
				size.key, size.value, ModelSizeSmall, ModelSizeLarge))
		}
	}

	switch s.Features.Birdseye.Mode {
	case BirdseyeModeContinuous, BirdseyeModeMotion, BirdseyeModeObjects:
	default:
		problems = append(problems, fmt.Sprintf(
			"features.birdseye.mode %q is not valid", s.Features.Birdseye.Mode))
	}

	for tier, days := range map[string]int{
		"retention.alerts":     s.Retention.Alerts,
		"retention.detections": s.Retention.Detections,
		"retention.motion":     s.Retention.Motion,
		"retention.snapshots":  s.Retention.Snapshots,
	} {
		if days < 0 {
			problems = append(problems, fmt.Sprintf("%s must not be negative", tier))
		}
	}

	for i, cam := range s.Cameras.Manual {
		if cam.Name == "" {
			problems = append(problems, fmt.Sprintf("cameras.manual[%d] is missing a name", i))
		}
		if cam.RecordURL == "" {
			problems = append(problems, fmt.Sprintf(
				"cameras.manual[%d] (%s) is missing a record url", i, cam.Name))
		}
	}

	if s.MQTT.Port <= 0 || s.MQTT.Port > 65535 {
		problems = append(problems, fmt.Sprintf("mqtt.port %d is out of range", s.MQTT.Port))
	}

	if s.Output.Path == "" {
		problems = append(problems, "output.path must not be empty")
	}
	if s.Output.AutoPush && s.Output.FrigateURL == "" {
		problems = append(problems, "output.autopush requires output.frigateurl")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Newf("invalid settings: %s", strings.Join(problems, "; ")).
		Component("conf").
		Category(errors.CategoryValidation).
		Context("problem_count", len(problems)).
		Build()
}
