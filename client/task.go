package client

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a generation task.
type TaskStatus string

const (
	StatusQueued    TaskStatus = "queued"
	StatusRunning   TaskStatus = "running"
	StatusCancelled TaskStatus = "cancelled"
	StatusSucceeded TaskStatus = "succeeded"
	StatusFailed    TaskStatus = "failed"
	StatusExpired   TaskStatus = "expired"
)

// Terminal reports whether the task will not change state again.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusCancelled, StatusSucceeded, StatusFailed, StatusExpired:
		return true
	}
	return false
}

// TaskCreated is the answer to a create call.
type TaskCreated struct {
	ID string `json:"id"`
}

// TaskError is the failure reported on a failed task.
type TaskError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Usage reports the tokens billed for a task.
type Usage struct {
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Task is a generation task as reported by the query endpoint.
type Task struct {
	ID                    string     `json:"id"`
	Model                 string     `json:"model"`
	Status                TaskStatus `json:"status"`
	Error                 *TaskError `json:"error,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	VideoURL              string     `json:"video_url,omitempty"`
	LastFrameURL          string     `json:"last_frame_url,omitempty"`
	Usage                 Usage      `json:"usage"`
	Seed                  int64      `json:"seed"`
	Resolution            string     `json:"resolution,omitempty"`
	Ratio                 string     `json:"ratio,omitempty"`
	Duration              int        `json:"duration,omitempty"`
	Frames                int        `json:"frames,omitempty"`
	FramesPerSecond       int        `json:"framespersecond,omitempty"`
	ServiceTier           string     `json:"service_tier,omitempty"`
	ExecutionExpiresAfter int        `json:"execution_expires_after,omitempty"`
	GenerateAudio         *bool      `json:"generate_audio,omitempty"`
	Draft                 bool       `json:"draft,omitempty"`
	DraftTaskID           string     `json:"draft_task_id,omitempty"`
}

type taskPayload struct {
	ID      string     `json:"id"`
	Model   string     `json:"model"`
	Status  TaskStatus `json:"status"`
	Error   *TaskError `json:"error"`
	Content *struct {
		VideoURL     string `json:"video_url"`
		LastFrameURL string `json:"last_frame_url"`
	} `json:"content"`
	Usage                 Usage  `json:"usage"`
	CreatedAt             int64  `json:"created_at"`
	UpdatedAt             int64  `json:"updated_at"`
	Seed                  int64  `json:"seed"`
	Resolution            string `json:"resolution"`
	Ratio                 string `json:"ratio"`
	Duration              int    `json:"duration"`
	Frames                int    `json:"frames"`
	FramesPerSecond       int    `json:"framespersecond"`
	ServiceTier           string `json:"service_tier"`
	ExecutionExpiresAfter int    `json:"execution_expires_after"`
	GenerateAudio         *bool  `json:"generate_audio"`
	Draft                 bool   `json:"draft"`
	DraftTaskID           string `json:"draft_task_id"`
}

func (p taskPayload) task() *Task {
	t := &Task{
		ID:                    p.ID,
		Model:                 p.Model,
		Status:                p.Status,
		Error:                 p.Error,
		Usage:                 p.Usage,
		Seed:                  p.Seed,
		Resolution:            p.Resolution,
		Ratio:                 p.Ratio,
		Duration:              p.Duration,
		Frames:                p.Frames,
		FramesPerSecond:       p.FramesPerSecond,
		ServiceTier:           p.ServiceTier,
		ExecutionExpiresAfter: p.ExecutionExpiresAfter,
		GenerateAudio:         p.GenerateAudio,
		Draft:                 p.Draft,
		DraftTaskID:           p.DraftTaskID,
	}
	if p.CreatedAt > 0 {
		t.CreatedAt = time.Unix(p.CreatedAt, 0).UTC()
	}
	if p.UpdatedAt > 0 {
		t.UpdatedAt = time.Unix(p.UpdatedAt, 0).UTC()
	}
	if p.Content != nil {
		t.VideoURL = p.Content.VideoURL
		t.LastFrameURL = p.Content.LastFrameURL
	}
	return t
}

type errorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Param   string `json:"param"`
		Type    string `json:"type"`
	} `json:"error"`
}

// mapResponse turns a raw answer into out or into a RequestError /
// UnknownError. A 2xx body that does not decode into out is an
// UnknownError.
func mapResponse(status int, header http.Header, body []byte, out any) error {
	if status >= 200 && status < 300 {
		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &UnknownError{StatusCode: status, Message: "malformed response body", Body: truncate(body), Err: err}
		}
		return nil
	}

	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	if status >= 400 && status < 500 {
		reqErr := &RequestError{StatusCode: status, RequestID: header.Get("X-Client-Request-Id")}
		if envelope.Error != nil {
			reqErr.Code = envelope.Error.Code
			reqErr.Message = envelope.Error.Message
			reqErr.Param = envelope.Error.Param
		}
		if reqErr.Message == "" {
			reqErr.Message = http.StatusText(status)
		}
		return reqErr
	}

	unknown := &UnknownError{StatusCode: status, Body: truncate(body)}
	if envelope.Error != nil {
		unknown.Message = strings.TrimSpace(envelope.Error.Code + " " + envelope.Error.Message)
	}
	return unknown
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
