// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package studio exposes the generative and billing collaborators to the
studio front end.

Style extraction asks the text model for a JSON style description, preview
generation asks the image model for a sample panel, and the balance endpoint
proxies the billing account. Each collaborator is optional; a missing one
answers 503.
*/
package studio

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/billing"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/gemini"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/integrations/storage"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/validate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/slug"
)

// Generator is the generative collaborator.
type Generator interface {
	GenerateText(context context.Context, request gemini.TextRequest) (string, error)
	GenerateImage(context context.Context, prompt string) (gemini.Image, error)
}

// BalanceReader is the billing collaborator.
type BalanceReader interface {
	Balance(context context.Context) (*billing.Balance, error)
}

const maxPromptLength = 4000

const extractionInstruction = `You are the art director of a comic studio.
Describe the visual style of the reference material as a JSON object with
these string fields: name, description, systemPrompt, promptTemplate,
technicalTags, negativePrompt, continuityRules, formatGuidelines, and an
object visualStyle with styleName, medium, lineart, coloring, lighting and
anatomy. promptTemplate must contain the {scene} placeholder. Answer with
the JSON object only.`

// Service runs the generative and billing calls.
type Service struct {
	generator Generator
	balance   BalanceReader
	logger    *slog.Logger
}

// NewService constructs a new [Service]. Either collaborator may be nil.
func NewService(generator Generator, balance BalanceReader, logger *slog.Logger) *Service {
	return &Service{generator: generator, balance: balance, logger: logger}
}

// # Requests

// ExtractRequest asks for a style description of a prompt and optional
// reference image.
type ExtractRequest struct {
	Prompt         string `json:"prompt"`
	ReferenceImage string `json:"referenceImage"`
}

func (request ExtractRequest) check() error {
	validator := &validate.Validator{}
	validator.Custom("prompt", strings.TrimSpace(request.Prompt) == "" && request.ReferenceImage == "",
		"A prompt or a reference image is required")
	validator.MaxLen("prompt", request.Prompt, maxPromptLength)
	validator.Custom("referenceImage", request.ReferenceImage != "" && !style.IsEmbeddedImage(request.ReferenceImage),
		"Must be an embedded base64 image")
	return validator.Err()
}

// PreviewRequest asks for a sample image, optionally in a given style.
type PreviewRequest struct {
	Prompt string       `json:"prompt"`
	Style  *style.Input `json:"style"`
}

func (request PreviewRequest) check() error {
	validator := &validate.Validator{}
	validator.Required("prompt", request.Prompt)
	validator.MaxLen("prompt", request.Prompt, maxPromptLength)
	return validator.Err()
}

// Preview is a generated image as a data URL, ready to be sent as a
// style's previewImageUrl.
type Preview struct {
	Image string `json:"image"`
}

// # Operations

/*
ExtractStyle asks the text model for style fields.

Description: The answer is decoded into a partial style input. When the
model leaves the key out, one is suggested from the name.

Returns:
  - *style.Input: Suggested draft fields
  - error: VALIDATION_ERROR, SERVICE_UNAVAILABLE, UPSTREAM_ERROR
*/
func (service *Service) ExtractStyle(context context.Context, request ExtractRequest) (*style.Input, error) {
	if err := request.check(); err != nil {
		return nil, err
	}
	if service.generator == nil {
		return nil, apperr.ServiceUnavailable("Generative service is not configured")
	}

	textRequest := gemini.TextRequest{
		System: extractionInstruction,
		Prompt: strings.TrimSpace(request.Prompt),
		JSON:   true,
	}
	if textRequest.Prompt == "" {
		textRequest.Prompt = "Describe the style of the attached image."
	}
	if request.ReferenceImage != "" {
		mimeType, data, err := storage.ParseDataURL(request.ReferenceImage)
		if err != nil {
			return nil, err
		}
		textRequest.Image = &gemini.Image{MimeType: mimeType, Data: data}
	}

	text, err := service.generator.GenerateText(context, textRequest)
	if err != nil {
		return nil, apperr.BadGateway("Style extraction failed", err)
	}

	suggestion := &style.Input{}
	if err := json.Unmarshal([]byte(stripFence(text)), suggestion); err != nil {
		return nil, apperr.BadGateway("Style extraction returned an unreadable answer", err)
	}

	// Identity and lifecycle fields are the editor's decision.
	suggestion.Status = nil
	suggestion.IsDefault = nil
	suggestion.PreviewImageURL = nil

	if suggestion.Name != nil && strings.TrimSpace(pointer.Val(suggestion.Key)) == "" {
		if key := slug.From(*suggestion.Name); key != "" {
			suggestion.Key = &key
		}
	}

	service.logger.InfoContext(context, "style_extracted",
		slog.String("key", pointer.Val(suggestion.Key)),
		slog.Bool("with_reference", request.ReferenceImage != ""),
	)
	return suggestion, nil
}

/*
GeneratePreview asks the image model for a sample panel.

Returns:
  - Preview: The image as a data URL
  - error: VALIDATION_ERROR, SERVICE_UNAVAILABLE, UPSTREAM_ERROR
*/
func (service *Service) GeneratePreview(context context.Context, request PreviewRequest) (Preview, error) {
	if err := request.check(); err != nil {
		return Preview{}, err
	}
	if service.generator == nil {
		return Preview{}, apperr.ServiceUnavailable("Generative service is not configured")
	}

	image, err := service.generator.GenerateImage(context, PreviewPrompt(request.Prompt, request.Style))
	if err != nil {
		return Preview{}, apperr.BadGateway("Preview generation failed", err)
	}

	service.logger.InfoContext(context, "style_preview_generated",
		slog.String("mime_type", image.MimeType),
		slog.Int("bytes", len(image.Data)),
	)
	return Preview{Image: image.DataURL()}, nil
}

// Balance returns the billing account balance.
func (service *Service) Balance(context context.Context) (*billing.Balance, error) {
	if service.balance == nil {
		return nil, apperr.ServiceUnavailable("Billing is not configured")
	}

	balance, err := service.balance.Balance(context)
	if err != nil {
		return nil, apperr.BadGateway("Balance lookup failed", err)
	}
	return balance, nil
}

// # Prompt Assembly

// PreviewPrompt renders the image prompt for a scene in an optional style.
// A style prompt template with a {scene} placeholder wraps the scene.
func PreviewPrompt(scene string, in *style.Input) string {
	scene = strings.TrimSpace(scene)
	if in == nil {
		return "Comic panel: " + scene
	}

	draft := style.BuildDraft(in)

	var builder strings.Builder
	if strings.Contains(draft.PromptTemplate, "{scene}") {
		builder.WriteString(strings.ReplaceAll(draft.PromptTemplate, "{scene}", scene))
	} else {
		builder.WriteString("Comic panel: " + scene)
	}

	visual := draft.VisualStyle
	for _, entry := range []struct{ label, value string }{
		{"Style", visual.StyleName},
		{"Medium", visual.Medium},
		{"Line art", visual.Lineart},
		{"Coloring", visual.Coloring},
		{"Lighting", visual.Lighting},
		{"Anatomy", visual.Anatomy},
		{"Tags", draft.TechnicalTags},
		{"Avoid", draft.NegativePrompt},
	} {
		if value := strings.TrimSpace(entry.value); value != "" {
			builder.WriteString("\n" + entry.label + ": " + value)
		}
	}

	if draft.Safety.SFWOnly {
		builder.WriteString("\nKeep the image safe for work.")
	}
	return builder.String()
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}
