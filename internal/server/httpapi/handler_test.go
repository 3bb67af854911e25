package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/credgate/credgate/internal/common"
	"github.com/credgate/credgate/internal/logging"
	"github.com/credgate/credgate/internal/server/auth"
	"github.com/credgate/credgate/internal/server/users"
)

func newTestServer(t *testing.T, tokenHeader string) *Server {
	t.Helper()

	authority, err := auth.NewAuthority([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := users.NewService(users.NewInMemoryRepository(), auth.NewPasswordHasher(bcrypt.MinCost), authority, logger)

	return NewServer(":0", logger, svc, tokenHeader)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, statusResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp statusResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestServer(t, "")
	h := s.Handler()

	// register alice
	rec, resp := doRequest(t, h, http.MethodPost, "/register-user",
		`{"username":"alice","password":"s3cret"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	// login with the right password
	rec, resp = doRequest(t, h, http.MethodPost, "/login-user",
		`{"username":"alice","password":"s3cret"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	token := resp.Token

	// login with the wrong password
	rec, resp = doRequest(t, h, http.MethodPost, "/login-user",
		`{"username":"alice","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)

	// validate the issued token
	rec, resp = doRequest(t, h, http.MethodPost, "/validate-user", "",
		map[string]string{common.DefaultAccessTokenHeader: token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	// validate garbage
	rec, resp = doRequest(t, h, http.MethodPost, "/validate-user", "",
		map[string]string{common.DefaultAccessTokenHeader: "garbage.garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestLogin_UnknownUserIndistinguishableFromBadPassword(t *testing.T) {
	s := newTestServer(t, "")
	h := s.Handler()

	_, _ = doRequest(t, h, http.MethodPost, "/register-user",
		`{"username":"alice","password":"s3cret"}`, nil)

	recUnknown, respUnknown := doRequest(t, h, http.MethodPost, "/login-user",
		`{"username":"nosuchuser","password":"s3cret"}`, nil)
	recWrong, respWrong := doRequest(t, h, http.MethodPost, "/login-user",
		`{"username":"alice","password":"wrong"}`, nil)

	assert.Equal(t, recUnknown.Code, recWrong.Code)
	assert.Equal(t, respUnknown, respWrong)
}

func TestRegister_MalformedBody(t *testing.T) {
	s := newTestServer(t, "")

	rec, resp := doRequest(t, s.Handler(), http.MethodPost, "/register-user", `{"username":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestRegister_EmptyFields(t *testing.T) {
	s := newTestServer(t, "")

	rec, resp := doRequest(t, s.Handler(), http.MethodPost, "/register-user",
		`{"username":"","password":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestServer(t, "")
	h := s.Handler()

	rec, _ := doRequest(t, h, http.MethodPost, "/register-user",
		`{"username":"alice","password":"one"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := doRequest(t, h, http.MethodPost, "/register-user",
		`{"username":"alice","password":"two"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
}

func TestValidate_MissingHeader(t *testing.T) {
	s := newTestServer(t, "")

	rec, resp := doRequest(t, s.Handler(), http.MethodPost, "/validate-user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)
}

func TestValidate_CustomHeaderName(t *testing.T) {
	s := newTestServer(t, "Authorization")
	h := s.Handler()

	_, _ = doRequest(t, h, http.MethodPost, "/register-user",
		`{"username":"bob","password":"pw"}`, nil)
	_, login := doRequest(t, h, http.MethodPost, "/login-user",
		`{"username":"bob","password":"pw"}`, nil)
	require.NotEmpty(t, login.Token)

	// token in the configured header
	rec, resp := doRequest(t, h, http.MethodPost, "/validate-user", "",
		map[string]string{"Authorization": login.Token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	// token in the default header is ignored under a custom config
	rec, _ = doRequest(t, h, http.MethodPost, "/validate-user", "",
		map[string]string{common.DefaultAccessTokenHeader: login.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
