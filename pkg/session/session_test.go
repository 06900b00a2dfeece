package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestCheck(t *testing.T) {
	sess := Acquire(nil, &oauth2.Token{AccessToken: "tok"})
	assert.NoError(t, sess.Check())
	assert.True(t, sess.Valid())

	sess.Revoke()
	assert.False(t, sess.Valid())
	assert.True(t, errors.Is(sess.Check(), ErrNotAuthenticated))
}

func TestCheckNilSession(t *testing.T) {
	var sess *Session
	assert.True(t, errors.Is(sess.Check(), ErrNotAuthenticated))
}

func TestCheckExpiredToken(t *testing.T) {
	sess := Acquire(nil, &oauth2.Token{
		AccessToken: "tok",
		Expiry:      time.Now().Add(-time.Hour),
	})
	assert.True(t, errors.Is(sess.Check(), ErrNotAuthenticated))
}
