package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"sunstone/pkg/errors"
)

type stubVerifier struct {
	uids map[string]string
}

func (v *stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := v.uids[token]
	if !ok {
		return "", errors.Unauthorized("Invalid token", nil)
	}
	return uid, nil
}

func authContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func uidEcho(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.String(http.StatusOK, uid)
}

func TestAuthenticateSetsUID(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{uids: map[string]string{"good-token": "alice"}})

	c, rec := authContext("Bearer good-token")
	assert.NoError(t, m.Authenticate(uidEcho)(c))
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthenticateRejectsMissingOrBadToken(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{uids: map[string]string{"good-token": "alice"}})

	for _, header := range []string{"", "good-token", "Bearer bad-token", "Basic Zm9v"} {
		c, _ := authContext(header)
		err := m.Authenticate(uidEcho)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}

func TestOptionalAuthenticateLetsAnonymousThrough(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{uids: map[string]string{"good-token": "alice"}})

	c, rec := authContext("")
	assert.NoError(t, m.OptionalAuthenticate(uidEcho)(c))
	assert.Equal(t, "", rec.Body.String())

	// An invalid token degrades to anonymous rather than failing.
	c, rec = authContext("Bearer bad-token")
	assert.NoError(t, m.OptionalAuthenticate(uidEcho)(c))
	assert.Equal(t, "", rec.Body.String())

	c, rec = authContext("Bearer good-token")
	assert.NoError(t, m.OptionalAuthenticate(uidEcho)(c))
	assert.Equal(t, "alice", rec.Body.String())
}
