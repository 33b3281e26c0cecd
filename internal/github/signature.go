package github

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

// Header names GitHub sets on webhook deliveries
const (
	HeaderSignature = "X-Hub-Signature-256"
	HeaderEvent     = "X-GitHub-Event"
	HeaderDelivery  = "X-GitHub-Delivery"
)

const signaturePrefix = "sha256="

// Sign returns the X-Hub-Signature-256 header value for a body
func Sign(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return signaturePrefix + hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks the X-Hub-Signature-256 header against an HMAC-SHA256 of the raw body.
// An empty secret rejects every delivery.
func VerifySignature(secret string, body []byte, header string) error {
	if secret == "" {
		return domain.ErrWebhookSecretNotConfigured
	}
	if header == "" {
		return domain.ErrMissingSignature
	}
	if !strings.HasPrefix(header, signaturePrefix) {
		return domain.ErrInvalidSignature
	}

	got, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return domain.ErrInvalidSignature
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	if !hmac.Equal(got, h.Sum(nil)) {
		return domain.ErrInvalidSignature
	}

	return nil
}
