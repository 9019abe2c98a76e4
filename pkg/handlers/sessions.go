package handlers

import (
	"crypto/sha1"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"
)

const (
	sessionName         = "tide-widget"
	sessionLocationID   = "location-id"
	sessionLocationName = "location-name"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.
)

// NewCookieStore keeps sessions in cookies signed with sessionKey and
// encrypted with a key derived from password.
func NewCookieStore(sessionKey, password string, secure bool) *sessions.CookieStore {
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			encryptionKey(password),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   secure,
			HttpOnly: true,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

func encryptionKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte{}, 4096, 32, sha1.New)
}
