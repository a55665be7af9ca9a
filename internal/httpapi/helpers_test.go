// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/auth"
	"github.com/panelinha/panelinha/internal/auth/authtest"
	"github.com/panelinha/panelinha/internal/httpapi"
	"github.com/panelinha/panelinha/internal/recipe"
	"github.com/panelinha/panelinha/internal/recipe/recipetest"
)

// testServer drives the API through its HTTP handler with in-memory
// repositories behind the real services.
type testServer struct {
	t        *testing.T
	handler  http.Handler
	users    *authtest.MemoryUserRepository
	sessions *authtest.MemorySessionRepository
	recipes  *recipetest.MemoryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := authtest.NewMemoryUserRepository()
	sessions := authtest.NewMemorySessionRepository()
	recipes := recipetest.NewMemoryRepository()

	credentialSvc, err := auth.NewCredentialService(users, auth.NewBcryptHasher())
	require.NoError(t, err)
	sessionSvc, err := auth.NewSessionService(sessions)
	require.NoError(t, err)
	recipeSvc, err := recipe.NewService(recipes)
	require.NoError(t, err)

	srv, err := httpapi.New(httpapi.Options{
		Credentials: credentialSvc,
		Sessions:    sessionSvc,
		Recipes:     recipeSvc,
	})
	require.NoError(t, err)

	return &testServer{
		t:        t,
		handler:  srv.Handler(),
		users:    users,
		sessions: sessions,
		recipes:  recipes,
	}
}

// do performs a request against the handler. A non-empty token is sent
// as a bearer Authorization header; a non-nil body is JSON-encoded.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into out.
func (ts *testServer) decode(rec *httptest.ResponseRecorder, out any) {
	ts.t.Helper()
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), out))
}

// signUp registers an account and fails the test on any non-201.
func (ts *testServer) signUp(name, email, password string) {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/sign-up", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, "sign-up body: %s", rec.Body.String())
}

// signIn logs in and returns the session token.
func (ts *testServer) signIn(email, password string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/sign-in", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(ts.t, http.StatusOK, rec.Code, "sign-in body: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	ts.decode(rec, &resp)
	require.NotEmpty(ts.t, resp.Token)
	return resp.Token
}

// register creates an account and returns a live session token for it.
func (ts *testServer) register(name, email, password string) string {
	ts.t.Helper()
	ts.signUp(name, email, password)
	return ts.signIn(email, password)
}

// createRecipe stores a recipe for the token's owner and returns its id.
func (ts *testServer) createRecipe(token, title string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/receitas", token, map[string]string{
		"title": title, "ingredients": "some ingredients", "preparation": "some steps",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, "create recipe body: %s", rec.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	ts.decode(rec, &resp)
	require.NotEmpty(ts.t, resp.ID)
	return resp.ID
}
