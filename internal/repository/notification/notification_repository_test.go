package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailjetRepository_SendEmail(t *testing.T) {
	var got payloadSendEmail
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.1/send", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{
		MailjetBaseURL:           srv.URL,
		MailjetBasicAuthUsername: "key",
		MailjetBasicAuthPassword: "secret",
		MailjetSenderEmail:       "hello@ozean-licht.test",
		MailjetSenderName:        "Ozean Licht",
	})

	err := repo.SendEmail(context.Background(), "Anna", "anna@example.com", "Hi", "<p>body</p>")
	require.NoError(t, err)

	// base64("key:secret")
	assert.True(t, strings.HasPrefix(authHeader, "Basic a2V5OnNlY3JldA"), authHeader)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello@ozean-licht.test", got.Messages[0].From.Email)
	assert.Equal(t, "anna@example.com", got.Messages[0].To[0].Email)
	assert.Equal(t, "Hi", got.Messages[0].Subject)
	assert.Equal(t, "<p>body</p>", got.Messages[0].HTMLPart)
}

func TestMailjetRepository_SendEmailRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ErrorMessage":"bad key"}`))
	}))
	defer srv.Close()

	repo := NewMailjetRepository(MailjetConfig{MailjetBaseURL: srv.URL})

	err := repo.SendEmail(context.Background(), "Anna", "anna@example.com", "Hi", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
