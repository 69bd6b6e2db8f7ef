package federated

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminClient_Configured(t *testing.T) {
	assert.False(t, NewAdminClient("", "key", "", time.Second).Configured())
	assert.False(t, NewAdminClient("https://idp.example.com", "", "", time.Second).Configured())
	assert.True(t, NewAdminClient("https://idp.example.com", "key", "", time.Second).Configured())

	var nilClient *AdminClient
	assert.False(t, nilClient.Configured())
}

func TestAdminClient_InviteUserByEmail_Success(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/invite", r.URL.Path)
		assert.Equal(t, "https://site.example.com/admin", r.URL.Query().Get("redirect_to"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "new-user-id", "email": "a@b.com"})
	}))
	defer server.Close()

	client := NewAdminClient(server.URL+"/", "service-key", "https://site.example.com/admin", time.Second)
	user, err := client.InviteUserByEmail(context.Background(), "a@b.com", map[string]any{"role": "admin"})

	require.NoError(t, err)
	assert.Equal(t, "new-user-id", user.ID)
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, map[string]any{"role": "admin"}, gotBody["data"])
}

func TestAdminClient_InviteUserByEmail_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"A user with this email address has already been registered"}`))
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "service-key", "", time.Second)
	user, err := client.InviteUserByEmail(context.Background(), "a@b.com", nil)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "already been registered")
}

func TestAdminClient_InviteUserByEmail_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "service-key", "", time.Second)
	_, err := client.InviteUserByEmail(context.Background(), "a@b.com", nil)

	assert.Error(t, err)
}

func TestAdminClient_InviteUserByEmail_NotConfigured(t *testing.T) {
	client := NewAdminClient("", "", "", time.Second)

	_, err := client.InviteUserByEmail(context.Background(), "a@b.com", nil)

	assert.ErrorIs(t, err, ErrNotConfigured)
}
