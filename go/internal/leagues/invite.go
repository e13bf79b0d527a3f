package leagues

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// inviteCodeBytes of entropy encode to exactly 8 url-safe characters.
const inviteCodeBytes = 6

// CodeGenerator produces candidate invite codes.
type CodeGenerator func() (string, error)

// RandomInviteCode draws a fresh url-safe code from crypto/rand.
func RandomInviteCode() (string, error) {
	buf := make([]byte, inviteCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
