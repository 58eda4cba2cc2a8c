package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"warrantyhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSMSSenderSendsQueryParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"authorization": q.Get("authorization"),
			"numbers":       q.Get("numbers"),
			"message":       q.Get("message"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":true,"message":["queued"]}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.SMSApiURL = srv.URL
	cfg.SMSApiKey = "k1"

	sender := NewSMSSender(cfg)
	require.NotNil(t, sender)
	require.NoError(t, sender.SendSMS(context.Background(), "9876543210", "hello"))

	assert.Equal(t, "k1", got["authorization"])
	assert.Equal(t, "9876543210", got["numbers"])
	assert.Equal(t, "hello", got["message"])
}

func TestHTTPSMSSenderReportsGatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.SMSApiURL = srv.URL

	err := NewSMSSender(cfg).SendSMS(context.Background(), "9876543210", "hello")
	assert.Error(t, err)
}

func TestNewSMSSenderDisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewSMSSender(config.Default()))
}
