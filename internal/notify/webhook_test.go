package notify_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/nearby-labs/waypost/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestWebhookNotifier_Notify(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	limiter := rate.NewLimiter(rate.Inf, 1)
	note := notify.Notification{
		ID:    uuid.New(),
		Title: "buy milk",
		Body:  "Maidan Nezalezhnosti 1, Kyiv",
	}

	t.Run("successful dispatch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "https://push.example.com/waypost", req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				var got notify.Notification
				require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
				assert.Equal(t, note, got)

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		notifier := notify.NewWebhookNotifierWithClient(mockClient, "https://push.example.com/waypost", limiter, logger)

		require.NoError(t, notifier.Notify(ctx, note))
	})

	t.Run("gateway error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadGateway,
					Body:       io.NopCloser(bytes.NewBufferString(`upstream down`)),
				}, nil
			},
		}

		notifier := notify.NewWebhookNotifierWithClient(mockClient, "https://push.example.com/waypost", limiter, logger)

		err := notifier.Notify(ctx, note)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "notification gateway returned status 502")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		notifier := notify.NewWebhookNotifierWithClient(mockClient, "https://push.example.com/waypost", limiter, logger)

		err := notifier.Notify(ctx, note)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})
}
