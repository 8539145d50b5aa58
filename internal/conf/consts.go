// conf/consts.go constants for supported Frigate versions and option values
package conf

// Supported Frigate version tags. V014 is the older flat-retention schema,
// V017 introduces tiered retention, the stationary classifier and GenAI.
const (
	VersionV014 = "0.14"
	VersionV017 = "0.17"
)

// Detector backend types.
const (
	DetectorEdgeTPU  = "edgetpu"
	DetectorCPU      = "cpu"
	DetectorOpenVINO = "openvino"
	DetectorTensorRT = "tensorrt"
	DetectorONNX     = "onnx"
	DetectorYOLOv9   = "yolov9" // 0.17+ only
)

// Hardware acceleration types.
const (
	HwaccelVAAPI   = "vaapi"
	HwaccelCUDA    = "cuda"
	HwaccelQSV     = "qsv"
	HwaccelRKMPP   = "rkmpp"
	HwaccelV4L2M2M = "v4l2m2m"
	HwaccelNone    = "none"
)

// Birdseye view modes.
const (
	BirdseyeModeContinuous = "continuous"
	BirdseyeModeMotion     = "motion"
	BirdseyeModeObjects    = "objects"
)

// Model size options for ML features.
const (
	ModelSizeSmall = "small"
	ModelSizeLarge = "large"
)

// GenAI provider options (Frigate 0.17+).
const (
	GenAIProviderOllama      = "ollama"
	GenAIProviderGemini      = "gemini"
	GenAIProviderOpenAI      = "openai"
	GenAIProviderAzureOpenAI = "azure_openai"
)

// DetectorTypesFor returns the detector backends valid for a Frigate version.
func DetectorTypesFor(version string) []string {
	base := []string{
		DetectorEdgeTPU,
		DetectorCPU,
		DetectorOpenVINO,
		DetectorTensorRT,
		DetectorONNX,
	}
	if version == VersionV017 {
		return append(base, DetectorYOLOv9)
	}
	return base
}

// SupportedVersions returns the Frigate version tags this builder can target.
func SupportedVersions() []string {
	return []string{VersionV014, VersionV017}
}

// HwaccelTypes returns the supported hardware acceleration choices.
func HwaccelTypes() []string {
	return []string{
		HwaccelVAAPI,
		HwaccelCUDA,
		HwaccelQSV,
		HwaccelRKMPP,
		HwaccelV4L2M2M,
		HwaccelNone,
	}
}

// GenAIProviders returns the supported generative-AI providers.
func GenAIProviders() []string {
	return []string{
		GenAIProviderOllama,
		GenAIProviderGemini,
		GenAIProviderOpenAI,
		GenAIProviderAzureOpenAI,
	}
}
