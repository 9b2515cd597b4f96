// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package gemini is a small client for the Google Gemini generateContent REST
endpoint.

It covers the two calls the studio makes: text generation (optionally in
JSON response mode and with a reference image) and image generation with
the IMAGE response modality. Failures are returned, never retried.
*/
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// maxResponseBytes bounds the upstream body; generated images are large.
	maxResponseBytes = 32 << 20
)

// ErrEmptyResponse is returned when a call succeeds without usable content.
var ErrEmptyResponse = errors.New("gemini: no content in response")

// Options configures a [Client].
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string

	// HTTPClient overrides the default client with a 120s timeout.
	HTTPClient *http.Client
}

// Client calls the Gemini REST API.
type Client struct {
	options Options
	http    *http.Client
}

// New creates a client. It returns nil when no API key is configured.
func New(options Options) *Client {
	if options.APIKey == "" {
		return nil
	}
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	options.BaseURL = strings.TrimRight(options.BaseURL, "/")

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	return &Client{options: options, http: httpClient}
}

// # Requests

// TextRequest is a single-turn text generation request.
type TextRequest struct {
	System string
	Prompt string

	// Image is an optional reference image.
	Image *Image

	// JSON switches the response MIME type to application/json.
	JSON bool
}

// Image is inline binary image data.
type Image struct {
	MimeType string
	Data     []byte
}

// DataURL renders the image as a base64 data URL.
func (image Image) DataURL() string {
	return "data:" + image.MimeType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}

/*
GenerateText runs a generateContent call on the text model.

Returns:
  - string: The text of the first candidate
  - error: Transport errors, non-200 statuses, or [ErrEmptyResponse]
*/
func (client *Client) GenerateText(context context.Context, request TextRequest) (string, error) {
	parts := []part{{Text: request.Prompt}}
	if request.Image != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: request.Image.MimeType,
			Data:     base64.StdEncoding.EncodeToString(request.Image.Data),
		}})
	}

	body := generateRequest{Contents: []content{{Role: "user", Parts: parts}}}
	if request.System != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: request.System}}}
	}
	if request.JSON {
		body.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	response, err := client.generate(context, client.options.Model, body)
	if err != nil {
		return "", err
	}

	for _, candidate := range response.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", ErrEmptyResponse
}

/*
GenerateImage runs a generateContent call on the image model with the IMAGE
response modality.

Returns:
  - Image: The first inline image of the response
  - error: Transport errors, non-200 statuses, or [ErrEmptyResponse]
*/
func (client *Client) GenerateImage(context context.Context, prompt string) (Image, error) {
	body := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	}

	response, err := client.generate(context, client.options.ImageModel, body)
	if err != nil {
		return Image{}, err
	}

	for _, candidate := range response.Candidates {
		for _, p := range candidate.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}

			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return Image{}, fmt.Errorf("gemini image decode base64: %w", err)
			}

			mimeType := p.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return Image{MimeType: mimeType, Data: data}, nil
		}
	}
	return Image{}, ErrEmptyResponse
}

func (client *Client) generate(context context.Context, model string, body generateRequest) (*generateResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", client.options.BaseURL, model)

	request, err := http.NewRequestWithContext(context, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", client.options.APIKey)

	response, err := client.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("gemini http: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("gemini read body: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: response.StatusCode, Body: string(raw)}
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("gemini unmarshal: %w", err)
	}
	return &result, nil
}

// StatusError is a non-200 answer from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini API error (status %d): %s", e.StatusCode, e.Body)
}

// # Wire types

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}
