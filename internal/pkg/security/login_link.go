package security

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// accessLinkSalt is the fixed salt the downstream login portal hashes with.
// The portal recomputes md5(salt + email + timestamp) server-side, so salt,
// algorithm and concatenation order must not change.
const accessLinkSalt = "3ykOQzkL2X647dWw8dDx7h5c"

// LoginLink is a signed one-time login URL plus the generated password
// fragment embedded in it.
type LoginLink struct {
	URL      string
	Password string
}

// AccessLinkToken returns the md5 token the portal validates for the given
// email and Unix timestamp.
func AccessLinkToken(email string, timestamp int64) string {
	base := fmt.Sprintf("%s%s%d", accessLinkSalt, email, timestamp)
	sum := md5.Sum([]byte(base))
	return hex.EncodeToString(sum[:])
}

// NewOneTimePassword returns a short random password fragment for the
// generated portal account.
func NewOneTimePassword() string {
	return uuid.New().String()[:10]
}

// BuildLoginLink assembles the portal login URL. Parameter names and order
// match what the portal expects; mn and g are always sent empty.
func BuildLoginLink(loginURL, email, firstName, lastName string, now time.Time) LoginLink {
	timestamp := now.Unix()
	password := NewOneTimePassword()

	url := fmt.Sprintf(
		"%s?un=%s&pw=%s&ln=%s&fn=%s&mn=&g=&e=%s&t=%d&k=%s",
		loginURL, email, password, lastName, firstName, email, timestamp,
		AccessLinkToken(email, timestamp),
	)

	return LoginLink{URL: url, Password: password}
}
