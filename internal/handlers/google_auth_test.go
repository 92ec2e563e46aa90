package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"TRAVELBUDDY_BACK-END/internal/config"
	"TRAVELBUDDY_BACK-END/internal/dto"
	"TRAVELBUDDY_BACK-END/internal/middleware"
	"TRAVELBUDDY_BACK-END/internal/repository"
	"TRAVELBUDDY_BACK-END/internal/services"
)

func newGoogleHandler(t *testing.T) *GoogleAuthHandler {
	t.Helper()
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"google-token","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour},
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost/api/auth/google/callback",
			FrontendURL:  "http://frontend.test/callback",
		},
	}
	users := services.NewUserService(repository.NewMemoryStore(), services.SystemClock{}, 4)
	h := NewGoogleAuthHandler(users, cfg)
	h.oauth2Config.Endpoint = oauth2.Endpoint{AuthURL: tokenSrv.URL + "/auth", TokenURL: tokenSrv.URL + "/token"}
	h.fetchUserInfo = func(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
		assert.Equal(t, "google-token", token.AccessToken)
		return &dto.GoogleUserInfo{Email: "G@Example.com", Name: "Gee", Picture: "http://img.test/g.png", Verified: true}, nil
	}
	return h
}

func TestGoogleLogin(t *testing.T) {
	h := newGoogleHandler(t)
	w := httptest.NewRecorder()
	h.GoogleLogin(w, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON[dto.GoogleLoginResponse](t, w)
	assert.NotEmpty(t, resp.State)
	assert.Contains(t, resp.AuthURL, "state="+resp.State)
	assert.Contains(t, resp.AuthURL, "client_id=client")
}

func TestGoogleCallback(t *testing.T) {
	h := newGoogleHandler(t)

	t.Run("missing code", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GoogleCallback(w, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected code", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GoogleCallback(w, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=bad", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates the user and redirects with a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GoogleCallback(w, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=good-code&state=x", nil))
		require.Equal(t, http.StatusFound, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "frontend.test", loc.Host)
		assert.Equal(t, "g@example.com", loc.Query().Get("email"))

		claims, err := middleware.ValidateToken(loc.Query().Get("token"), h.jwt)
		require.NoError(t, err)
		assert.Equal(t, loc.Query().Get("user_id"), claims.UserID.String())
	})
}
