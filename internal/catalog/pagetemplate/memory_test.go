// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// memoryRepository is an in-memory [pagetemplate.Repository] with the same
// ordering, filtering and default rules as the PostgreSQL one.
type memoryRepository struct {
	mu    sync.Mutex
	rows  map[string]*pagetemplate.PageTemplate
	clock time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rows:  map[string]*pagetemplate.PageTemplate{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (repo *memoryRepository) tick() time.Time {
	repo.clock = repo.clock.Add(time.Second)
	return repo.clock
}

func matches(template *pagetemplate.PageTemplate, params catalog.ListParams) bool {
	if params.Status != "" && template.Status != params.Status {
		return false
	}
	if params.Search == "" {
		return true
	}

	term := strings.ToLower(params.Search)
	fields := []string{template.Name}
	if template.Key != nil {
		fields = append(fields, *template.Key)
	}
	if template.Description != nil {
		fields = append(fields, *template.Description)
	}
	return slices.ContainsFunc(fields, func(field string) bool {
		return strings.Contains(strings.ToLower(field), term)
	})
}

func (repo *memoryRepository) List(_ context.Context, params catalog.ListParams) ([]*pagetemplate.PageTemplate, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var found []*pagetemplate.PageTemplate
	for _, template := range repo.rows {
		if matches(template, params) {
			copied := *template
			found = append(found, &copied)
		}
	}

	slices.SortFunc(found, func(a, b *pagetemplate.PageTemplate) int {
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

func (repo *memoryRepository) find(predicate func(*pagetemplate.PageTemplate) bool) *pagetemplate.PageTemplate {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, template := range repo.rows {
		if predicate(template) {
			copied := *template
			return &copied
		}
	}
	return nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*pagetemplate.PageTemplate, error) {
	return repo.find(func(t *pagetemplate.PageTemplate) bool { return t.ID == id }), nil
}

func (repo *memoryRepository) FindByKey(_ context.Context, key string) (*pagetemplate.PageTemplate, error) {
	return repo.find(func(t *pagetemplate.PageTemplate) bool { return t.Key != nil && *t.Key == key }), nil
}

func (repo *memoryRepository) FindDefault(_ context.Context) (*pagetemplate.PageTemplate, error) {
	return repo.find(func(t *pagetemplate.PageTemplate) bool { return t.IsDefault }), nil
}

func (repo *memoryRepository) keyTaken(key *string, exceptID string) bool {
	if key == nil {
		return false
	}
	for id, template := range repo.rows {
		if id != exceptID && template.Key != nil && *template.Key == *key {
			return true
		}
	}
	return false
}

func (repo *memoryRepository) apply(template *pagetemplate.PageTemplate, payload pagetemplate.Payload) {
	template.Key = payload.Key
	template.Name = payload.Name
	template.Description = payload.Description
	template.Type = payload.Type
	template.Orientation = payload.Orientation
	if payload.AspectRatio != nil {
		template.AspectRatio = *payload.AspectRatio
	}
	template.ResolutionTier = payload.ResolutionTier
	template.Layout = payload.Layout
	template.Rows = payload.Rows
	template.Cols = payload.Cols
	template.PanelCount = payload.PanelCount
	template.Gutter = payload.Gutter
	template.SafeArea = payload.SafeArea
	template.Status = payload.Status
	template.IsDefault = payload.IsDefault
	template.UpdatedAt = repo.tick()
}

func (repo *memoryRepository) clearOtherDefaults(keepID string) {
	for id, template := range repo.rows {
		if id != keepID && template.IsDefault {
			template.IsDefault = false
			template.UpdatedAt = repo.tick()
		}
	}
}

func (repo *memoryRepository) Create(_ context.Context, payload pagetemplate.Payload) (*pagetemplate.PageTemplate, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.keyTaken(payload.Key, "") {
		return nil, apperr.Conflict("A record with this key already exists")
	}

	template := &pagetemplate.PageTemplate{ID: uuid.New(), CreatedAt: repo.tick()}
	repo.apply(template, payload)
	repo.rows[template.ID] = template

	if template.IsDefault {
		repo.clearOtherDefaults(template.ID)
	}

	copied := *template
	return &copied, nil
}

func (repo *memoryRepository) Update(_ context.Context, id string, payload pagetemplate.Payload) (*pagetemplate.PageTemplate, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	template, found := repo.rows[id]
	if !found {
		return nil, nil
	}
	if repo.keyTaken(payload.Key, id) {
		return nil, apperr.Conflict("A record with this key already exists")
	}

	repo.apply(template, payload)
	if template.IsDefault {
		repo.clearOtherDefaults(template.ID)
	}

	copied := *template
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
	for _, template := range repo.rows {
		counts[template.Status]++
	}
	return counts, nil
}

// recordingCache is a map-backed [catalog.DefaultCache] that counts calls.
type recordingCache struct {
	mu            sync.Mutex
	values        map[catalog.Kind]pagetemplate.PageTemplate
	invalidations int
	hits          int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: map[catalog.Kind]pagetemplate.PageTemplate{}}
}

func (cache *recordingCache) Get(_ context.Context, kind catalog.Kind, target any) (bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	value, found := cache.values[kind]
	if !found {
		return false, nil
	}
	cache.hits++
	*target.(*pagetemplate.PageTemplate) = value
	return true, nil
}

func (cache *recordingCache) Set(_ context.Context, kind catalog.Kind, value any) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.values[kind] = *value.(*pagetemplate.PageTemplate)
	return nil
}

func (cache *recordingCache) Invalidate(_ context.Context, kind catalog.Kind) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	delete(cache.values, kind)
	cache.invalidations++
	return nil
}

// interleavingRepository runs afterFindDefault once, right after the first
// FindDefault read, to land a write between a cache miss and its fill.
type interleavingRepository struct {
	*memoryRepository
	afterFindDefault func()
}

func (repo *interleavingRepository) FindDefault(ctx context.Context) (*pagetemplate.PageTemplate, error) {
	found, err := repo.memoryRepository.FindDefault(ctx)
	if hook := repo.afterFindDefault; hook != nil {
		repo.afterFindDefault = nil
		hook()
	}
	return found, err
}
