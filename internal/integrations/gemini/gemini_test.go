// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/gemini"
)

// captured is the subset of a generateContent body the tests inspect.
type captured struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Parts []struct {
			Text       string `json:"text"`
			InlineData *struct {
				MimeType string `json:"mimeType"`
				Data     string `json:"data"`
			} `json:"inlineData"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig *struct {
		ResponseMimeType   string   `json:"responseMimeType"`
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

func newServer(t *testing.T, status int, response string, seen *captured, path *string) *gemini.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "test-key", request.Header.Get("x-goog-api-key"))
		*path = request.URL.Path
		require.NoError(t, json.NewDecoder(request.Body).Decode(seen))

		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return gemini.New(gemini.Options{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/",
		Model:      "text-model",
		ImageModel: "image-model",
	})
}

/*
TestNew_Disabled returns no client without an API key.
*/
func TestNew_Disabled(t *testing.T) {
	assert.Nil(t, gemini.New(gemini.Options{}))
}

/*
TestGenerateText sends system, prompt, image and JSON mode, and returns the
first text part.
*/
func TestGenerateText(t *testing.T) {
	var (
		seen captured
		path string
	)
	client := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"{\"name\":\"Noir\"}"}]}}]}`, &seen, &path)

	text, err := client.GenerateText(context.Background(), gemini.TextRequest{
		System: "You are an art director.",
		Prompt: "Describe this style",
		Image:  &gemini.Image{MimeType: "image/png", Data: []byte("hello")},
		JSON:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"name":"Noir"}`, text)
	assert.Equal(t, "/v1beta/models/text-model:generateContent", path)
	require.NotNil(t, seen.SystemInstruction)
	assert.Equal(t, "You are an art director.", seen.SystemInstruction.Parts[0].Text)
	require.Len(t, seen.Contents, 1)
	require.Len(t, seen.Contents[0].Parts, 2)
	assert.Equal(t, "aGVsbG8=", seen.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, "application/json", seen.GenerationConfig.ResponseMimeType)
}

/*
TestGenerateImage decodes the first inline image on the image model.
*/
func TestGenerateImage(t *testing.T) {
	var (
		seen captured
		path string
	)
	client := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"here"},{"inlineData":{"mimeType":"image/webp","data":"aGVsbG8="}}]}}]}`,
		&seen, &path)

	image, err := client.GenerateImage(context.Background(), "a neon alley")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/image-model:generateContent", path)
	assert.Equal(t, []string{"IMAGE", "TEXT"}, seen.GenerationConfig.ResponseModalities)
	assert.Equal(t, "image/webp", image.MimeType)
	assert.Equal(t, "hello", string(image.Data))
	assert.Equal(t, "data:image/webp;base64,aGVsbG8=", image.DataURL())
}

/*
TestErrors reports upstream statuses and empty answers.
*/
func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		check    func(t *testing.T, err error)
	}{
		{"upstream_status", http.StatusTooManyRequests, `{"error":"quota"}`, func(t *testing.T, err error) {
			var statusErr *gemini.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		}},
		{"no_candidates", http.StatusOK, `{"candidates":[]}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, gemini.ErrEmptyResponse)
		}},
		{"malformed_body", http.StatusOK, `not json`, func(t *testing.T, err error) {
			assert.Error(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				seen captured
				path string
			)
			client := newServer(t, tt.status, tt.response, &seen, &path)

			_, err := client.GenerateText(context.Background(), gemini.TextRequest{Prompt: "x"})
			tt.check(t, err)
		})
	}
}
