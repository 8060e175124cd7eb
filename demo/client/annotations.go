package client

import (
	"net/http"
	"net/url"

	"cliplabel/types"
)

// CreateAnnotation submits one reviewed segment.
func (c *Client) CreateAnnotation(videoID string, start, end float64, intent, text string) (*types.Annotation, error) {
	var out types.Annotation
	body := map[string]any{
		"videoId":   videoID,
		"startTime": start,
		"endTime":   end,
		"intent":    intent,
		"text":      text,
	}
	if err := c.doJSON(http.MethodPost, "/api/annotations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAnnotations fetches annotations for one video, ascending by start.
func (c *Client) ListAnnotations(videoID string) ([]types.Annotation, error) {
	q := url.Values{}
	if videoID != "" {
		q.Set("videoId", videoID)
	}
	q.Set("sort", "startTime")
	var out []types.Annotation
	if err := c.doJSON(http.MethodGet, "/api/annotations?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
