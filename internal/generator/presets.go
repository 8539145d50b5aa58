package generator

// ffmpegHwaccelPresets maps a hardware-accelerator choice to the ffmpeg
// preset string the target engine expects.
var ffmpegHwaccelPresets = map[string]string{
	"vaapi":   "preset-vaapi",
	"cuda":    "preset-nvidia-h264",
	"qsv":     "preset-intel-qsv-h264",
	"rkmpp":   "preset-rkmpp",
	"v4l2m2m": "preset-rpi-64-h264",
	"none":    "preset-http-jpeg-generic",
}

// defaultHwaccelPreset is the documented generic fallback for unknown
// accelerator choices; generation never fails on an unknown key.
const defaultHwaccelPreset = "preset-vaapi"

// recordPresets maps a camera source tag to the record output-args preset.
var recordPresets = map[string]string{
	"unifiprotect": "preset-record-ubiquiti",
	"amcrest":      "preset-record-generic-audio-aac",
	"reolink":      "preset-record-generic-audio-aac",
	"generic":      "preset-record-generic-audio-aac",
	"manual":       "preset-record-generic",
}

// defaultRecordPreset keeps recordings broadly playable when the source is
// not in the table.
const defaultRecordPreset = "preset-record-generic-audio-aac"

// HwaccelPreset resolves an accelerator choice to its ffmpeg preset.
func HwaccelPreset(hwaccel string) string {
	if preset, ok := ffmpegHwaccelPresets[hwaccel]; ok {
		return preset
	}
	return defaultHwaccelPreset
}

// RecordPreset resolves a camera source tag to its record output preset.
func RecordPreset(source string) string {
	if preset, ok := recordPresets[source]; ok {
		return preset
	}
	return defaultRecordPreset
}
