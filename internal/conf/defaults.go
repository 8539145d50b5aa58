// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("logging.file", "")

	viper.SetDefault("frigate.version", VersionV014)
	viper.SetDefault("frigate.detector.type", DetectorEdgeTPU)
	viper.SetDefault("frigate.detector.device", "usb")
	viper.SetDefault("frigate.hwaccel", HwaccelVAAPI)
	viper.SetDefault("frigate.networkinterfaces", []string{"eth0"})

	viper.SetDefault("directory.snapshot", "")

	viper.SetDefault("mqtt.auto", true)
	viper.SetDefault("mqtt.host", "localhost")
	viper.SetDefault("mqtt.port", 1883)
	viper.SetDefault("mqtt.username", "")
	viper.SetDefault("mqtt.password", "")

	viper.SetDefault("features.audiodetection", true)
	viper.SetDefault("features.facerecognition", false)
	viper.SetDefault("features.facerecognitionmodel", ModelSizeLarge)
	viper.SetDefault("features.semanticsearch", false)
	viper.SetDefault("features.semanticsearchmodel", ModelSizeLarge)
	viper.SetDefault("features.lpr", false)
	viper.SetDefault("features.birdclassification", false)
	viper.SetDefault("features.birdseye.enabled", true)
	viper.SetDefault("features.birdseye.mode", BirdseyeModeObjects)
	viper.SetDefault("features.genai.enabled", false)
	viper.SetDefault("features.genai.provider", GenAIProviderOllama)

	viper.SetDefault("retention.alerts", 30)
	viper.SetDefault("retention.detections", 30)
	viper.SetDefault("retention.motion", 7)
	viper.SetDefault("retention.snapshots", 30)

	viper.SetDefault("cameras.selected", []string{})
	viper.SetDefault("cameras.excludeunavailable", true)

	viper.SetDefault("groups.fromareas", true)

	viper.SetDefault("output.path", "frigate.yml")
	viper.SetDefault("output.autopush", false)
	viper.SetDefault("output.restartonpush", true)

	viper.SetDefault("observability.enabled", false)
	viper.SetDefault("observability.listen", "0.0.0.0:8090")
}
