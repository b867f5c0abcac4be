package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	server := newTestServer(t)

	resp, parsed := postJSON(t, server.URL+"/api/register", map[string]string{
		"name":     "Aiko",
		"email":    "a@x.com",
		"password": "pw1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, parsed.Success)

	var created struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &created))
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "user", created.Role)
	assert.NotContains(t, string(parsed.Data), "pw1", "password must never be echoed")

	// Registering the same identity twice fails, first record stands.
	resp, parsed = postJSON(t, server.URL+"/api/register", map[string]string{
		"name":     "Impostor",
		"email":    "a@x.com",
		"password": "pw2",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "ALREADY_REGISTERED", parsed.Error.Code)

	token := loginUser(t, server.URL, "a@x.com", "pw1")
	assert.NotEmpty(t, token)
}

func TestLoginSetsTokenCookie(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server.URL, "a@x.com", "pw1", "")

	resp, _ := postJSON(t, server.URL+"/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "pw1",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie, "login must set the token cookie")
	assert.NotEmpty(t, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)

	// The cookie and the body carry the same credential: the cookie
	// alone must authenticate a protected request.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/lessons", nil)
	require.NoError(t, err)
	req.AddCookie(tokenCookie)
	lessonResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lessonResp.Body.Close() })
	assert.Equal(t, http.StatusOK, lessonResp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server.URL, "a@x.com", "pw1", "")

	resp, parsed := postJSON(t, server.URL+"/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "INVALID_PASSWORD", parsed.Error.Code)
	assert.NotContains(t, parsed.Error.Message, "pw1")

	resp, parsed = postJSON(t, server.URL+"/api/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "pw1",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "USER_NOT_FOUND", parsed.Error.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	server := newTestServer(t)

	resp, _ := postJSON(t, server.URL+"/api/logout", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Empty(t, tokenCookie.Value)
	assert.Less(t, tokenCookie.MaxAge, 0)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/lessons")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsClaims(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server.URL, "a@x.com", "pw1", "")
	token := loginUser(t, server.URL, "a@x.com", "pw1")

	resp, parsed := doJSON(t, http.MethodGet, server.URL+"/api/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var claims struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &claims))
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}
