package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/credgate/credgate/internal/client/api"
	"github.com/credgate/credgate/internal/logging"
	"github.com/credgate/credgate/internal/server/auth"
	"github.com/credgate/credgate/internal/server/httpapi"
	"github.com/credgate/credgate/internal/server/users"
)

// startBackend brings up the real HTTP stack over an in-memory store.
func startBackend(t *testing.T) *httptest.Server {
	t.Helper()

	authority, err := auth.NewAuthority([]byte("cli-test-secret"), time.Hour)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := users.NewService(users.NewInMemoryRepository(), auth.NewPasswordHasher(bcrypt.MinCost), authority, logger)

	backend := httptest.NewServer(httpapi.NewServer(":0", logger, svc, "").Handler())
	t.Cleanup(backend.Close)
	return backend
}

func stubPrompts(t *testing.T, texts []string, passwords [][]byte) {
	t.Helper()

	oldText, oldPassword := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPassword })

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		next := texts[0]
		texts = texts[1:]
		return next, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		next := passwords[0]
		passwords = passwords[1:]
		return next, nil
	}
}

func TestApp_RegisterLoginValidate(t *testing.T) {
	backend := startBackend(t)
	ctx := context.Background()

	var out bytes.Buffer
	app := NewApp(api.NewClient(backend.URL, ""), strings.NewReader(""), &out)

	stubPrompts(t,
		[]string{"alice", "alice"},
		[][]byte{[]byte("s3cret"), []byte("s3cret")},
	)

	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Login(ctx))
	assert.NotEmpty(t, app.token)
	require.NoError(t, app.Validate(ctx))

	assert.Contains(t, out.String(), "Success!")
	assert.Contains(t, out.String(), "Token is valid.")
}

func TestApp_LoginWrongPassword(t *testing.T) {
	backend := startBackend(t)
	ctx := context.Background()

	var out bytes.Buffer
	app := NewApp(api.NewClient(backend.URL, ""), strings.NewReader(""), &out)

	stubPrompts(t,
		[]string{"alice", "alice"},
		[][]byte{[]byte("s3cret"), []byte("wrong")},
	)

	require.NoError(t, app.Register(ctx))
	assert.ErrorIs(t, app.Login(ctx), api.ErrUnauthorized)
	assert.Empty(t, app.token)
}

func TestApp_ValidateWithoutLogin(t *testing.T) {
	backend := startBackend(t)

	var out bytes.Buffer
	app := NewApp(api.NewClient(backend.URL, ""), strings.NewReader(""), &out)

	assert.Error(t, app.Validate(context.Background()))
}

func TestApp_RunExitCommand(t *testing.T) {
	backend := startBackend(t)

	var out bytes.Buffer
	app := NewApp(api.NewClient(backend.URL, ""), strings.NewReader(""), &out)

	stubPrompts(t, []string{"bogus", "exit"}, nil)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "unknown command: bogus")
}
