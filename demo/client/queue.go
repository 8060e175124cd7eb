package client

import (
	"fmt"
	"net/http"

	"cliplabel/types"
)

// QueueVideo is a queue entry as the API reports it.
type QueueVideo struct {
	types.VideoDescriptor
	HasTimestamps bool    `json:"hasTimestamps"`
	Downloaded    bool    `json:"downloaded"`
	LocalURL      *string `json:"localUrl"`
}

// QueueResponse is the queue state returned by every queue endpoint.
type QueueResponse struct {
	CurrentIndex     int          `json:"currentIndex"`
	Videos           []QueueVideo `json:"videos"`
	TimestampsSource string       `json:"timestampsSource"`
}

// GetQueue fetches the current queue.
func (c *Client) GetQueue() (*QueueResponse, error) {
	var out QueueResponse
	if err := c.doJSON(http.MethodGet, "/api/queue", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetQueue replaces the queue with the given URLs.
func (c *Client) SetQueue(urls []string) (*QueueResponse, error) {
	var out QueueResponse
	body := map[string][]string{"videos": urls}
	if err := c.doJSON(http.MethodPost, "/api/queue", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCurrent moves the queue pointer.
func (c *Client) SetCurrent(index int) (*QueueResponse, error) {
	var out QueueResponse
	body := map[string]int{"index": index}
	if err := c.doJSON(http.MethodPut, "/api/queue/current", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteVideo marks the video at index completed, advancing the
// pointer when it was current.
func (c *Client) CompleteVideo(index int) (*QueueResponse, error) {
	var out QueueResponse
	path := fmt.Sprintf("/api/queue/%d/complete", index)
	if err := c.doJSON(http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTimestamps fetches the segment list for a video name.
func (c *Client) GetTimestamps(videoName string) ([]types.Segment, error) {
	var out struct {
		Segments []types.Segment `json:"segments"`
	}
	if err := c.doJSON(http.MethodGet, "/api/timestamps/"+videoName, nil, &out); err != nil {
		return nil, err
	}
	return out.Segments, nil
}
