package github_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/github"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"action":"closed","issue":{"number":42}}`)
	secret := "webhook-secret"
	valid := github.Sign(secret, body)

	tampered := append([]byte(nil), body...)
	tampered[len(tampered)-2] = '3'

	tests := []struct {
		name   string
		secret string
		body   []byte
		header string
		err    error
	}{
		{name: "valid signature", secret: secret, body: body, header: valid},
		{name: "empty secret rejects", secret: "", body: body, header: valid, err: domain.ErrWebhookSecretNotConfigured},
		{name: "missing header", secret: secret, body: body, header: "", err: domain.ErrMissingSignature},
		{name: "missing prefix", secret: secret, body: body, header: valid[len("sha256="):], err: domain.ErrInvalidSignature},
		{name: "sha1 prefix", secret: secret, body: body, header: "sha1=" + valid[len("sha256="):], err: domain.ErrInvalidSignature},
		{name: "not hex", secret: secret, body: body, header: "sha256=zz", err: domain.ErrInvalidSignature},
		{name: "wrong secret", secret: "other", body: body, header: valid, err: domain.ErrInvalidSignature},
		{name: "single byte tamper", secret: secret, body: tampered, header: valid, err: domain.ErrInvalidSignature},
		{name: "truncated signature", secret: secret, body: body, header: valid[:len(valid)-2], err: domain.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := github.VerifySignature(tt.secret, tt.body, tt.header)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSign(t *testing.T) {
	// Example from GitHub's webhook validation docs
	got := github.Sign("It's a Secret to Everybody", []byte("Hello, World!"))
	assert.Equal(t, "sha256=757107ea0eb2509fc211221cce984b8a37570b6d7586c22c46f4379c8b043e17", got)
}

func TestClassifyEvent(t *testing.T) {
	tests := []struct {
		header   string
		expected github.EventKind
	}{
		{"issues", github.EventKindIssue},
		{"pull_request", github.EventKindPullRequest},
		{"ping", github.EventKindPing},
		{"push", github.EventKindUnknown},
		{"", github.EventKindUnknown},
		{"Issues", github.EventKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, github.ClassifyEvent(tt.header))
		})
	}
}
