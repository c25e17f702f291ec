package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/besmartbusiness/lawyer-app/pkg/transcribe"
)

const transcriptionPrompt = "Transkribieren Sie die folgende Audiodatei auf Deutsch. " +
	"Konzentrieren Sie sich nur auf den gesprochenen Text und lassen Sie alle Füllwörter oder Geräusche weg."

type GeminiTranscriber struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

var _ transcribe.Provider = &GeminiTranscriber{}

func NewGeminiTranscriber(apiKey, modelName string) *GeminiTranscriber {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiTranscriber{
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// Transcribe sends the audio as an inline part. Data URIs are decoded
// directly; URL references are fetched first, since the generateContent API
// only takes inline or file-API payloads.
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioRef string) (string, error) {
	var mimeType string
	var audio []byte
	var err error

	if transcribe.IsDataURI(audioRef) {
		mimeType, audio, err = transcribe.DecodeDataURI(audioRef)
		if err != nil {
			return "", err
		}
	} else {
		mimeType, audio, err = t.fetch(ctx, audioRef)
		if err != nil {
			return "", err
		}
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: transcriptionPrompt},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(audio),
					}},
				},
			},
		},
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		t.ModelName,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", t.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no transcript")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

func (t *GeminiTranscriber) fetch(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create fetch request: %w", err)
	}
	res, err := t.Client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch audio: status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read audio body: %w", err)
	}

	mimeType := res.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return mimeType, data, nil
}
