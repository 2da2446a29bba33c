package eventstreams

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"medremind/internal/core/domain/user"
	"strconv"
	"strings"
)

// HMAC derives a stable, unguessable SSE stream identifier per user. A client
// that knows a stream ID can only listen to the events of its own user.
type HMAC struct {
	secretKey []byte
}

func NewHMAC(secretKey string) *HMAC {
	if secretKey == "" {
		panic("HMAC secret key must not be empty.")
	}
	return &HMAC{
		secretKey: []byte(secretKey),
	}
}

func (h *HMAC) StreamID(userID user.ID) string {
	id := strconv.FormatInt(int64(userID), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(id + "-" + h.getMac(id)))
}

func (h *HMAC) UserID(streamID string) (user.ID, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(streamID)
	if err != nil {
		return 0, false
	}
	parts := strings.SplitN(string(decoded), "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	id, mac := parts[0], parts[1]
	if !hmac.Equal([]byte(h.getMac(id)), []byte(mac)) {
		return 0, false
	}
	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return user.ID(userID), true
}

func (h *HMAC) getMac(value string) string {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, value)
	return hex.EncodeToString(hasher.Sum(nil))
}
