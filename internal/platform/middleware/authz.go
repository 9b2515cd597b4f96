// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/constants"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/ctxutil"
	requestutil "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/request"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/respond"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// unauthorized is the single 401 body; callers cannot tell a missing token
// from a rejected one.
var unauthorized = apperr.Unauthorized("Missing or invalid bearer token")

// Authenticate requires a valid bearer token on every request.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>'.
//  2. Verify it via [TokenVerifier].
//  3. Inject [*sec.AuthClaims] into the request context.
//
// Any failure yields 401 before the handler runs.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			scheme, token, found := strings.Cut(request.Header.Get(constants.HeaderAuthorization), " ")
			token = strings.TrimSpace(token)

			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, unauthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "token_rejected",
					"error", err.Error(),
				)
				respond.Error(writer, request, unauthorized)
				return
			}

			reportUser(request.Context(), claims.UserID)

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests whose effective role is below role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := requestutil.RequiredClaims(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			if !claims.EffectiveRole().AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
