package timestamps

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"cliplabel/types"
)

var (
	headerLine = regexp.MustCompile(`(?i)^(start|time|#|//)`)
	tokenSplit = regexp.MustCompile(`[,\t;|\s]+`)
	mmss       = regexp.MustCompile(`^(\d+):(\d{2})$`)
)

// Parse converts free-form delimited text into an ordered segment list.
// Lines that cannot yield a valid (start, end) pair with end > start and
// start >= 0 are dropped, never reported as errors. Input order is
// preserved.
func Parse(raw string) []types.Segment {
	segments := []types.Segment{}
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" || headerLine.MatchString(line) {
			continue
		}
		parts := tokenSplit.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		start, okStart := ParseTimeValue(parts[0])
		end, okEnd := ParseTimeValue(parts[1])
		if !okStart || !okEnd {
			continue
		}
		if seg, ok := validSegment(start, end); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// ParseAny accepts either delimited text or a JSON document. JSON forms:
// a list of [start, end] pairs, a list of objects with start/end or
// startTime/endTime keys, or a wrapper object exposing one of
// segments/timestamps/ranges. Elements that fail to yield a valid pair
// are dropped.
func ParseAny(raw string) []types.Segment {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		if segs, ok := parseJSON(trimmed); ok {
			return segs
		}
	}
	return Parse(raw)
}

func parseJSON(raw string) ([]types.Segment, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return parseJSONList(list), true
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil {
		for _, key := range []string{"segments", "timestamps", "ranges"} {
			if inner, ok := wrapper[key]; ok {
				if err := json.Unmarshal(inner, &list); err == nil {
					return parseJSONList(list), true
				}
			}
		}
	}
	return nil, false
}

func parseJSONList(list []json.RawMessage) []types.Segment {
	segments := []types.Segment{}
	for _, el := range list {
		if seg, ok := parseJSONElement(el); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

func parseJSONElement(el json.RawMessage) (types.Segment, bool) {
	var pair []float64
	if err := json.Unmarshal(el, &pair); err == nil && len(pair) >= 2 {
		return validSegment(pair[0], pair[1])
	}
	var obj struct {
		Start     *float64 `json:"start"`
		End       *float64 `json:"end"`
		StartTime *float64 `json:"startTime"`
		EndTime   *float64 `json:"endTime"`
	}
	if err := json.Unmarshal(el, &obj); err != nil {
		return types.Segment{}, false
	}
	start, end := obj.Start, obj.End
	if start == nil {
		start = obj.StartTime
	}
	if end == nil {
		end = obj.EndTime
	}
	if start == nil || end == nil {
		return types.Segment{}, false
	}
	return validSegment(*start, *end)
}

func validSegment(start, end float64) (types.Segment, bool) {
	if end > start && start >= 0 {
		return types.Segment{Start: start, End: end}, true
	}
	return types.Segment{}, false
}

// ParseTimeValue converts a single token to seconds. Tokens containing a
// colon are read as MM:SS (the minutes component may exceed 59); anything
// else is read as a decimal number of seconds.
func ParseTimeValue(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	if m := mmss.FindStringSubmatch(tok); m != nil {
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		return float64(mins*60 + secs), true
	}
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatTime renders seconds as an MM:SS string at one-second
// granularity. Negative or non-finite input yields "00:00".
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00"
	}
	whole := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}
