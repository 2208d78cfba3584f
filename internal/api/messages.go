package api

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Verifier []byte `json:"verifier"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	User        UserInfo `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// RequestUploadRequest asks for a presigned URL to upload audio to.
type RequestUploadRequest struct {
	ContentType string `json:"contentType,omitempty"`
}

type RequestUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type TranscribeRequest struct {
	AudioKey string `json:"audioKey"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

type TranscribeResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Cached   bool   `json:"cached"`
}

type ListTranscriptionsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type Transcription struct {
	ID        string    `json:"id"`
	AudioKey  string    `json:"audioKey"`
	Language  string    `json:"language"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListTranscriptionsResponse struct {
	Items []Transcription `json:"items"`
}
