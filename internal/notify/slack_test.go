package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxping/inboxping/internal/monitor"
)

func TestNewSlackSender(t *testing.T) {
	tests := []struct {
		name       string
		webhookURL string
		wantErr    string
	}{
		{
			name:       "valid https URL",
			webhookURL: "https://hooks.slack.com/services/T00/B00/XXX",
		},
		{
			name:    "empty URL",
			wantErr: "slack webhook URL is required",
		},
		{
			name:       "missing scheme",
			webhookURL: "hooks.slack.com/services/T00/B00/XXX",
			wantErr:    "must use http or https scheme",
		},
		{
			name:       "unsupported scheme",
			webhookURL: "ftp://hooks.slack.com/services/T00/B00/XXX",
			wantErr:    "must use http or https scheme",
		},
		{
			name:       "missing host",
			webhookURL: "https:///services/T00/B00/XXX",
			wantErr:    "must include a host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSlackSender(tt.webhookURL, nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, sender)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "slack", sender.Channel())
		})
	}
}

func TestSlackSenderDeliver(t *testing.T) {
	var gotBody slackPayload
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sender, err := NewSlackSender(srv.URL, nil)
	require.NoError(t, err)

	id, err := sender.Deliver(context.Background(), "*💰 Banking / Payments*\n*Subject:* Invoice")
	require.NoError(t, err)
	assert.Equal(t, "ok", id)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "*💰 Banking / Payments*\n*Subject:* Invoice", gotBody.Text)
}

func TestSlackSenderDeliverServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sender, err := NewSlackSender(srv.URL, nil)
	require.NoError(t, err)

	_, err = sender.Deliver(context.Background(), "payload")
	require.Error(t, err)
	assert.True(t, monitor.IsDeliveryError(err))
	assert.Contains(t, err.Error(), "no_service")
}

func TestSlackSenderDeliverConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sender, err := NewSlackSender(srv.URL, nil)
	require.NoError(t, err)

	_, err = sender.Deliver(context.Background(), "payload")
	require.Error(t, err)
	assert.True(t, monitor.IsDeliveryError(err))
}
