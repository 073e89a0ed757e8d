package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mailRecorder captures outgoing reset emails so tests can follow the
// reset link without a real SMTP server.
type mailRecorder struct {
	to    string
	token string
	calls int
}

func (m *mailRecorder) SendPasswordReset(to, rawToken string) error {
	m.to = to
	m.token = rawToken
	m.calls++
	return nil
}

func newTestAPI(t *testing.T) (*API, *mailRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Every test gets its own named in-memory database
	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	viper.Set("db.driver", "sqlite")
	viper.Set("db.path", "file:"+dbName+"?mode=memory&cache=shared")

	viper.Set("cors.allowed_origins", []string{"http://localhost:5173"})

	viper.Set("jwt.access_secret", "test-access-secret")
	viper.Set("jwt.refresh_secret", "test-refresh-secret")
	viper.Set("jwt.access_expiry_min", 15)

	// MinCost keeps the hashing-heavy flows fast
	viper.Set("security.bcrypt_cost", bcrypt.MinCost)

	a, err := NewRouter()
	require.NoError(t, err)

	rec := &mailRecorder{}
	a.Mail = rec

	return a, rec
}

type request struct {
	method  string
	path    string
	body    any
	token   string
	cookies []*http.Cookie
}

func do(a *API, r request) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if r.body != nil {
		json.NewEncoder(&buf).Encode(r.body)
	}

	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	for _, ck := range r.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, ck := range w.Result().Cookies() {
		if ck.Name == refreshCookieName {
			return ck
		}
	}

	t.Fatal("no refresh_token cookie in response")
	return nil
}

func registerUser(t *testing.T, a *API, name, email, password string) (token string, cookie *http.Cookie) {
	t.Helper()

	w := do(a, request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   gin.H{"name": name, "email": email, "password": password},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	return token, refreshCookie(t, w)
}
