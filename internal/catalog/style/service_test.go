// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
)

const embeddedPNG = "data:image/png;base64,iVBORw0KGgo="

func newTestService(uploader style.PreviewUploader) (*style.Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return style.NewService(repo, nil, uploader, logger), repo
}

/*
TestService_Create_AppliesDefaults stores a cleaned record with the
language and safety defaults.
*/
func TestService_Create_AppliesDefaults(t *testing.T) {
	service, _ := newTestService(nil)

	input := completeInput(" Ligne claire ", "ligne-claire")
	input.Description = pointer.To("  ")

	created, err := service.Create(context.Background(), *input)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ligne claire", created.Name)
	assert.Nil(t, created.Description)
	assert.Nil(t, created.VisualStyle.Anatomy)
	assert.Equal(t, "Italian", created.InteractionLanguage)
	assert.Equal(t, "English", created.PromptLanguage)
	assert.True(t, created.Safety.SFWOnly)
	assert.Equal(t, catalog.StatusActive, created.Status)
}

/*
TestService_Create_MissingFields rejects an incomplete style without writing.
*/
func TestService_Create_MissingFields(t *testing.T) {
	service, repo := newTestService(nil)

	input := completeInput("Noir", "noir")
	input.VisualStyle.Medium = nil
	input.NegativePrompt = pointer.To(" ")

	_, err := service.Create(context.Background(), *input)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	var fields []string
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"medium", "negativePrompt"}, fields)
	assert.Empty(t, repo.rows)
}

/*
TestService_DefaultSingleton moves the default flag to the last writer.
*/
func TestService_DefaultSingleton(t *testing.T) {
	service, repo := newTestService(nil)
	ctx := context.Background()

	first := completeInput("First", "first")
	first.IsDefault = pointer.To(true)
	styleA, err := service.Create(ctx, *first)
	require.NoError(t, err)

	second := completeInput("Second", "second")
	second.IsDefault = pointer.To(true)
	styleB, err := service.Create(ctx, *second)
	require.NoError(t, err)

	assert.False(t, repo.rows[styleA.ID].IsDefault)
	assert.True(t, repo.rows[styleB.ID].IsDefault)

	current, err := service.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, styleB.ID, current.ID)

	_, err = service.Update(ctx, styleA.ID, style.Input{IsDefault: pointer.To(true)})
	require.NoError(t, err)
	assert.True(t, repo.rows[styleA.ID].IsDefault)
	assert.False(t, repo.rows[styleB.ID].IsDefault)
}

/*
TestService_GetDefault_WriteDuringFill serves the new default after a write
lands between the cache miss and the cache fill.
*/
func TestService_GetDefault_WriteDuringFill(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingRepository{memoryRepository: newMemoryRepository()}
	cache := newMapCache()
	service := style.NewService(repo, cache, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first := completeInput("First", "first")
	first.IsDefault = pointer.To(true)
	styleA, err := service.Create(ctx, *first)
	require.NoError(t, err)

	var styleB *style.Style
	repo.afterFindDefault = func() {
		second := completeInput("Second", "second")
		second.IsDefault = pointer.To(true)
		var createErr error
		styleB, createErr = service.Create(ctx, *second)
		require.NoError(t, createErr)
	}

	current, err := service.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, styleB)
	assert.Equal(t, styleB.ID, current.ID)
	assert.NotEqual(t, styleA.ID, cache.values[catalog.KindStyle].ID)

	current, err = service.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, styleB.ID, current.ID)
}

/*
TestService_Update_ShallowMergesNested keeps nested fields the patch omits.
*/
func TestService_Update_ShallowMergesNested(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	created, err := service.Create(ctx, *completeInput("Noir", "noir"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, style.Input{
		VisualStyle: &style.VisualStyleInput{Coloring: pointer.To("monochrome")},
		Safety:      &style.SafetyInput{SFWOnly: pointer.To(false)},
	})
	require.NoError(t, err)

	assert.Equal(t, "monochrome", *updated.VisualStyle.Coloring)
	assert.Equal(t, "ink", *updated.VisualStyle.Medium)
	assert.Equal(t, "soft", *updated.VisualStyle.Lighting)
	assert.False(t, updated.Safety.SFWOnly)
	assert.Equal(t, "Noir", updated.Name)
}

/*
TestService_PreviewUpload replaces an embedded image with its uploaded URL.
*/
func TestService_PreviewUpload(t *testing.T) {
	uploader := &fakeUploader{}
	service, _ := newTestService(uploader)
	ctx := context.Background()

	input := completeInput("Noir", "noir")
	input.PreviewImageURL = pointer.To(embeddedPNG)

	created, err := service.Create(ctx, *input)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/styles/noir.png", *created.PreviewImageURL)
	assert.Equal(t, []string{"noir"}, uploader.names)

	// A stored URL is left alone.
	updated, err := service.Update(ctx, created.ID, style.Input{Name: pointer.To("Noir 2")})
	require.NoError(t, err)
	assert.Equal(t, *created.PreviewImageURL, *updated.PreviewImageURL)
	assert.Len(t, uploader.names, 1)
}

/*
TestService_PreviewUploadErrors maps storage problems to gateway errors.
*/
func TestService_PreviewUploadErrors(t *testing.T) {
	tests := []struct {
		name       string
		uploader   style.PreviewUploader
		wantStatus int
	}{
		{"no_storage", nil, 503},
		{"upload_failed", &fakeUploader{err: errors.New("connection reset")}, 502},
		{"invalid_image", &fakeUploader{err: apperr.ValidationError("Invalid image")}, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(tt.uploader)

			input := completeInput("Noir", "noir")
			input.PreviewImageURL = pointer.To(embeddedPNG)

			_, err := service.Create(context.Background(), *input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
			assert.Empty(t, repo.rows)
		})
	}
}

/*
TestService_PreviewDiscardedOnFailedWrite deletes the uploaded preview when
the row cannot be stored.
*/
func TestService_PreviewDiscardedOnFailedWrite(t *testing.T) {
	uploader := &fakeUploader{}
	service, _ := newTestService(uploader)
	ctx := context.Background()

	existing, err := service.Create(ctx, *completeInput("Noir", "noir"))
	require.NoError(t, err)
	other, err := service.Create(ctx, *completeInput("Neon", "neon"))
	require.NoError(t, err)

	duplicate := completeInput("Noir again", "noir")
	duplicate.PreviewImageURL = pointer.To(embeddedPNG)
	_, err = service.Create(ctx, *duplicate)
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	_, err = service.Update(ctx, other.ID, style.Input{
		Key:             existing.Key,
		PreviewImageURL: pointer.To(embeddedPNG),
	})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	assert.Equal(t, []string{
		"https://cdn.example.com/styles/noir.png",
		"https://cdn.example.com/styles/noir.png",
	}, uploader.deleted)

	// A successful write keeps its upload.
	input := completeInput("Glass", "glass")
	input.PreviewImageURL = pointer.To(embeddedPNG)
	_, err = service.Create(ctx, *input)
	require.NoError(t, err)
	assert.Len(t, uploader.deleted, 2)
}

/*
TestService_List_Search finds styles by name and key fragments.
*/
func TestService_List_Search(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	for _, names := range [][2]string{{"Neon", "neon"}, {"Glass", "glass"}, {"Neon Noir", "neon-noir"}} {
		_, err := service.Create(ctx, *completeInput(names[0], names[1]))
		require.NoError(t, err)
	}

	result, err := service.List(ctx, catalog.NewListParams(1, 10, "neon", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "Neon Noir", result.Data[0].Name)

	result, err = service.List(ctx, catalog.NewListParams(1, 10, "LASS", catalog.StatusActive))
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Glass", result.Data[0].Name)
}

/*
TestService_UnknownIDs maps missing and malformed ids to NOT_FOUND.
*/
func TestService_UnknownIDs(t *testing.T) {
	service, _ := newTestService(nil)
	ctx := context.Background()

	_, err := service.Get(ctx, "nope")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	_, err = service.Update(ctx, "0190c0de-0000-7000-8000-00000000dead", style.Input{})
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	assert.True(t, apperr.HasCode(service.Delete(ctx, "0190c0de-0000-7000-8000-00000000dead"), "NOT_FOUND"))

	_, err = service.GetDefault(ctx)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
