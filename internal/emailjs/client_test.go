package emailjs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsTemplateRequest(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL + "/", PublicKey: "pub", PrivateKey: "priv"})
	params := map[string]string{"company_name": "Acme Dental"}
	require.NoError(t, client.Send(context.Background(), "service_x", "template_y", params))

	want := sendRequest{
		ServiceID:      "service_x",
		TemplateID:     "template_y",
		UserID:         "pub",
		AccessToken:    "priv",
		TemplateParams: params,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestSendOmitsEmptyAccessToken(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, PublicKey: "pub"})
	require.NoError(t, client.Send(context.Background(), "s", "t", nil))
	_, present := raw["accessToken"]
	assert.False(t, present)
}

func TestSendReturnsStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "The template ID is invalid", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, PublicKey: "pub"})
	err := client.Send(context.Background(), "s", "t", map[string]string{})

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "The template ID is invalid", apiErr.Body)
	assert.EqualValues(t, 1, calls.Load(), "failed sends are not retried")
}

func TestSendRequiresIdentifiers(t *testing.T) {
	client := NewClient(Config{PublicKey: ""})
	assert.Error(t, client.Send(context.Background(), "s", "t", nil))

	client = NewClient(Config{PublicKey: "pub"})
	assert.Error(t, client.Send(context.Background(), "", "t", nil))
	assert.Error(t, client.Send(context.Background(), "s", "", nil))
}

func TestSendFailsFastWhenThrottled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, PublicKey: "pub", Rate: 0.001, Burst: 1})
	require.NoError(t, client.Send(context.Background(), "s", "t", nil))

	start := time.Now()
	err := client.Send(context.Background(), "s", "t", nil)
	assert.ErrorIs(t, err, ErrThrottled)
	assert.Less(t, time.Since(start), time.Second, "throttled sends do not wait for a slot")
	assert.EqualValues(t, 1, calls.Load())
}

func TestSendRejectsCancelledContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{BaseURL: srv.URL, PublicKey: "pub", Rate: 1, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, client.Send(ctx, "s", "t", nil), context.Canceled)
	assert.Zero(t, calls.Load())
	require.NoError(t, client.Send(context.Background(), "s", "t", nil), "a cancelled send does not use the slot")
}
