package videocache

import (
	"encoding/json"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Duration returns the length of a cached video in seconds via ffprobe,
// or 0 when the probe fails (ffprobe missing, unreadable file).
func Duration(path string) float64 {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0
	}
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0
	}
	return d
}
