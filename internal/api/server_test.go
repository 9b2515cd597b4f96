// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/api"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/dashboard"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/config"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/studio"
)

type emptyTemplates struct{}

func (emptyTemplates) CountByStatus(context.Context) (map[catalog.Status]int, error) {
	return map[catalog.Status]int{}, nil
}

func (emptyTemplates) GetDefault(context.Context) (*pagetemplate.PageTemplate, error) {
	return nil, apperr.NotFound("Default page template")
}

type emptyStyles struct{}

func (emptyStyles) CountByStatus(context.Context) (map[catalog.Status]int, error) {
	return map[catalog.Status]int{}, nil
}

func (emptyStyles) GetDefault(context.Context) (*style.Style, error) {
	return nil, apperr.NotFound("Default style")
}

type fixture struct {
	router http.Handler
	key    *rsa.PrivateKey
}

func newFixture(t *testing.T, databaseErr error) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return databaseErr },
		CheckCache:    func(context.Context) error { return nil },
	}, logger)

	studioHandler := studio.NewHandler(studio.NewService(nil, nil, logger))

	router := api.NewRouter(ctx, &config.Config{Environment: "development"}, logger,
		sec.NewTokenVerifier(&key.PublicKey, "studio-idp", "studio"),
		api.Handlers{
			Liveness:     liveness,
			Readiness:    readiness,
			PageTemplate: pagetemplate.NewHandler(pagetemplate.NewService(nil, nil, logger)),
			Style:        style.NewHandler(style.NewService(nil, nil, nil, logger)),
			Studio:       studioHandler,
			Dashboard:    dashboard.NewHandler(dashboard.NewService(emptyTemplates{}, emptyStyles{})),
		},
	)

	return fixture{router: router, key: key}
}

func (f fixture) token(t *testing.T, issuer string, expiresIn time.Duration) string {
	t.Helper()

	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-42",
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"studio"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Role: "viewer",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func (f fixture) get(target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRouter_HealthProbes are public and reflect dependency state.
*/
func TestRouter_HealthProbes(t *testing.T) {
	healthy := newFixture(t, nil)
	assert.Equal(t, http.StatusOK, healthy.get("/health", "").Code)
	assert.Equal(t, http.StatusOK, healthy.get("/ready", "").Code)

	degraded := newFixture(t, errors.New("connection refused"))
	recorder := degraded.get("/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "degraded")
}

/*
TestRouter_AuthBoundary answers one uniform 401 for every token problem.
*/
func TestRouter_AuthBoundary(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"expired", f.token(t, "studio-idp", -time.Minute)},
		{"wrong_issuer", f.token(t, "someone-else", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.get("/api/v1/dashboard/summary", tt.token)
			require.Equal(t, http.StatusUnauthorized, recorder.Code)

			var body struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body.Code)
			assert.Equal(t, "Missing or invalid bearer token", body.Error)
		})
	}
}

/*
TestRouter_AuthenticatedRoutes reach their handlers with a valid token.
*/
func TestRouter_AuthenticatedRoutes(t *testing.T) {
	f := newFixture(t, nil)
	token := f.token(t, "studio-idp", time.Hour)

	recorder := f.get("/api/v1/dashboard/summary", token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	// Billing is not configured in the fixture.
	assert.Equal(t, http.StatusServiceUnavailable, f.get("/api/v1/billing/balance", token).Code)

	// Unknown ids never reach the repository.
	assert.Equal(t, http.StatusNotFound, f.get("/api/v1/styles/not-a-uuid", token).Code)
	assert.Equal(t, http.StatusNotFound, f.get("/api/v1/page-templates/not-a-uuid", token).Code)
}

/*
TestRouter_StyleToolPaths answer 405 to reads instead of a style lookup.
*/
func TestRouter_StyleToolPaths(t *testing.T) {
	f := newFixture(t, nil)
	token := f.token(t, "studio-idp", time.Hour)

	for _, path := range []string{"/api/v1/styles/extract", "/api/v1/styles/preview"} {
		t.Run(path, func(t *testing.T) {
			recorder := f.get(path, token)
			assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
			assert.Equal(t, http.MethodPost, recorder.Header().Get("Allow"))

			var body struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
		})
	}
}
