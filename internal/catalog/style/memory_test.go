// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// completeInput returns an input that passes [style.Validate].
func completeInput(name, key string) *style.Input {
	return &style.Input{
		Name: pointer.To(name),
		Key:  pointer.To(key),
		VisualStyle: &style.VisualStyleInput{
			StyleName: pointer.To("Franco-Belgian"),
			Medium:    pointer.To("ink"),
			Lineart:   pointer.To("clean"),
			Coloring:  pointer.To("flat"),
			Lighting:  pointer.To("soft"),
		},
		PromptTemplate: pointer.To("{scene} in the style of {style}"),
		TechnicalTags:  pointer.To("ligne claire, flat colors"),
		NegativePrompt: pointer.To("photorealism"),
	}
}

// memoryRepository is an in-memory [style.Repository].
type memoryRepository struct {
	mu    sync.Mutex
	rows  map[string]*style.Style
	clock time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rows:  map[string]*style.Style{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repo *memoryRepository) tick() time.Time {
	repo.clock = repo.clock.Add(time.Second)
	return repo.clock
}

func matches(entity *style.Style, params catalog.ListParams) bool {
	if params.Status != "" && entity.Status != params.Status {
		return false
	}
	if params.Search == "" {
		return true
	}

	term := strings.ToLower(params.Search)
	fields := []string{entity.Name, pointer.Val(entity.Key), pointer.Val(entity.Description)}
	return slices.ContainsFunc(fields, func(field string) bool {
		return strings.Contains(strings.ToLower(field), term)
	})
}

func (repo *memoryRepository) List(_ context.Context, params catalog.ListParams) ([]*style.Style, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var found []*style.Style
	for _, entity := range repo.rows {
		if matches(entity, params) {
			copied := *entity
			found = append(found, &copied)
		}
	}

	slices.SortFunc(found, func(a, b *style.Style) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	total := len(found)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return found[start:end], total, nil
}

func (repo *memoryRepository) find(predicate func(*style.Style) bool) *style.Style {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, entity := range repo.rows {
		if predicate(entity) {
			copied := *entity
			return &copied
		}
	}
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*style.Style, error) {
	return repo.find(func(s *style.Style) bool { return s.ID == id }), nil
}

func (repo *memoryRepository) FindByKey(_ context.Context, key string) (*style.Style, error) {
	return repo.find(func(s *style.Style) bool { return s.Key != nil && *s.Key == key }), nil
}

func (repo *memoryRepository) FindDefault(_ context.Context) (*style.Style, error) {
	return repo.find(func(s *style.Style) bool { return s.IsDefault }), nil
}

func (repo *memoryRepository) keyTaken(key *string, exceptID string) bool {
	if key == nil {
		return false
	}
	for id, entity := range repo.rows {
		if id != exceptID && entity.Key != nil && *entity.Key == *key {
			return true
		}
	}
	return false
}

func (repo *memoryRepository) apply(entity *style.Style, payload style.Payload) {
	entity.Key = payload.Key
	entity.Name = payload.Name
	entity.Description = payload.Description
	entity.VisualStyle = payload.VisualStyle
	entity.SystemPrompt = payload.SystemPrompt
	entity.PromptTemplate = payload.PromptTemplate
	entity.TechnicalTags = payload.TechnicalTags
	entity.NegativePrompt = payload.NegativePrompt
	entity.ContinuityRules = payload.ContinuityRules
	entity.FormatGuidelines = payload.FormatGuidelines
	entity.InteractionLanguage = payload.InteractionLanguage
	entity.PromptLanguage = payload.PromptLanguage
	entity.Safety = payload.Safety
	entity.PreviewImageURL = payload.PreviewImageURL
	entity.Status = payload.Status
	entity.IsDefault = payload.IsDefault
	entity.UpdatedAt = repo.tick()
}

func (repo *memoryRepository) clearOtherDefaults(keepID string) {
	for id, entity := range repo.rows {
		if id != keepID && entity.IsDefault {
			entity.IsDefault = false
			entity.UpdatedAt = repo.tick()
		}
	}
}

func (repo *memoryRepository) Create(_ context.Context, payload style.Payload) (*style.Style, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.keyTaken(payload.Key, "") {
		return nil, apperr.Conflict("A record with this key already exists")
	}

	entity := &style.Style{ID: uuid.New(), CreatedAt: repo.tick()}
	repo.apply(entity, payload)
	repo.rows[entity.ID] = entity

	if entity.IsDefault {
		repo.clearOtherDefaults(entity.ID)
	}

	copied := *entity
	return &copied, nil
}

func (repo *memoryRepository) Update(_ context.Context, id string, payload style.Payload) (*style.Style, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entity, found := repo.rows[id]
	if !found {
		return nil, nil
	}
	if repo.keyTaken(payload.Key, id) {
		return nil, apperr.Conflict("A record with this key already exists")
	}

	repo.apply(entity, payload)
	if entity.IsDefault {
		repo.clearOtherDefaults(entity.ID)
	}

	copied := *entity
	return &copied, nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, found := repo.rows[id]; !found {
		return false, nil
	}
	delete(repo.rows, id)
	return true, nil
}

func (repo *memoryRepository) CountByStatus(_ context.Context) (map[catalog.Status]int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	counts := map[catalog.Status]int{}
	for _, entity := range repo.rows {
		counts[entity.Status]++
	}
	return counts, nil
}

// fakeUploader records uploads and deletes and returns a fixed CDN URL or err.
type fakeUploader struct {
	mu      sync.Mutex
	names   []string
	deleted []string
	err     error
}

func (uploader *fakeUploader) DeleteURL(_ context.Context, url string) error {
	uploader.mu.Lock()
	defer uploader.mu.Unlock()

	uploader.deleted = append(uploader.deleted, url)
	return nil
}

func (uploader *fakeUploader) UploadDataURL(_ context.Context, name, _ string) (string, error) {
	uploader.mu.Lock()
	defer uploader.mu.Unlock()

	if uploader.err != nil {
		return "", uploader.err
	}
	uploader.names = append(uploader.names, name)
	return "https://cdn.example.com/styles/" + name + ".png", nil
}

// mapCache is a map-backed [catalog.DefaultCache].
type mapCache struct {
	mu     sync.Mutex
	values map[catalog.Kind]style.Style
}

func newMapCache() *mapCache {
	return &mapCache{values: map[catalog.Kind]style.Style{}}
}

func (cache *mapCache) Get(_ context.Context, kind catalog.Kind, target any) (bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	value, found := cache.values[kind]
	if found {
		*target.(*style.Style) = value
	}
	return found, nil
}

func (cache *mapCache) Set(_ context.Context, kind catalog.Kind, value any) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.values[kind] = *value.(*style.Style)
	return nil
}

func (cache *mapCache) Invalidate(_ context.Context, kind catalog.Kind) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.values, kind)
	return nil
}

// interleavingRepository runs afterFindDefault once, right after the first
// FindDefault read.
type interleavingRepository struct {
	*memoryRepository
	afterFindDefault func()
}

func (repo *interleavingRepository) FindDefault(ctx context.Context) (*style.Style, error) {
	found, err := repo.memoryRepository.FindDefault(ctx)
	if hook := repo.afterFindDefault; hook != nil {
		repo.afterFindDefault = nil
		hook()
	}
	return found, err
}
