package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fifteen/apps/go-server/internal/auth"
)

func opts() auth.Options {
	return auth.Options{Secret: []byte("test-secret"), TTL: time.Hour, CookieName: "tok"}
}

func TestSignParse(t *testing.T) {
	o := opts()
	tok, exp, err := o.Sign("u1", "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	c, err := o.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.ID)
	assert.Equal(t, "alice", c.Username)

	other := opts()
	other.Secret = []byte("different")
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = o.Parse("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	o := opts()
	o.TTL = -time.Minute
	tok, _, err := o.Sign("u1", "alice")
	require.NoError(t, err)
	_, err = o.Parse(tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateSignup(t *testing.T) {
	assert.NoError(t, auth.ValidateSignup("alice_1", "password1"))
	for _, tc := range [][2]string{
		{"al", "password1"},
		{"alice!", "password1"},
		{"alice", "short"},
	} {
		assert.ErrorIs(t, auth.ValidateSignup(tc[0], tc[1]), auth.ErrInvalidSignup, tc[0])
	}
}

func TestPasswordHash(t *testing.T) {
	h, err := auth.HashPassword("password1")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(h, "password1"))
	assert.False(t, auth.CheckPassword(h, "password2"))
}

func TestTokenFrom(t *testing.T) {
	o := opts()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", o.TokenFrom(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "tok", Value: "xyz"})
	assert.Equal(t, "xyz", o.TokenFrom(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, o.TokenFrom(r))
}

func TestCookies(t *testing.T) {
	o := opts()
	w := httptest.NewRecorder()
	o.SetCookie(w, "abc", time.Now().Add(time.Hour))
	o.ClearCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
