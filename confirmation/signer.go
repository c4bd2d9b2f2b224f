package confirmation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"oasis/models"

	"golang.org/x/crypto/hkdf"
)

// Signer produces and checks the booking reference printed as a QR code.
type Signer struct {
	key []byte
}

// NewSigner derives the signing key from secret so the raw secret can be shared
// with other uses (such as session tokens) without reusing key material.
func NewSigner(secret []byte) (*Signer, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte("oasis booking confirmation")), key); err != nil {
		return nil, fmt.Errorf("derive confirmation key: %w", err)
	}
	return &Signer{key: key}, nil
}

func (s *Signer) sign(data string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Payload returns bookingID|cabinID|startDate|signature.
func (s *Signer) Payload(b models.Booking) string {
	data := fmt.Sprintf("%s|%s|%s", b.ID, b.CabinID, b.StartDate.UTC().Format("2006-01-02"))
	return data + "|" + s.sign(data)
}

// Verify checks a payload and returns the booking id it names.
func (s *Signer) Verify(payload string) (string, bool) {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return "", false
	}
	data, sig := payload[:i], payload[i+1:]
	if !hmac.Equal([]byte(sig), []byte(s.sign(data))) {
		return "", false
	}
	id, _, _ := strings.Cut(data, "|")
	return id, id != ""
}
