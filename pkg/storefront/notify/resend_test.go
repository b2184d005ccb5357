package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishyoulucky/storefront/pkg/storefront"
	"github.com/wishyoulucky/storefront/pkg/storefront/notify"
)

func TestNewResendSink(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := notify.NewResendSink("", "orders@example.com", "shop@example.com")
		assert.ErrorIs(t, err, storefront.ErrInvalidInput)
	})

	t.Run("requires sender", func(t *testing.T) {
		_, err := notify.NewResendSink("re_test", "", "shop@example.com")
		assert.ErrorIs(t, err, storefront.ErrInvalidInput)
	})
}

func TestResendSinkOrderReceived(t *testing.T) {
	event := storefront.OrderReceivedEvent{
		OrderID:     7,
		OrderNumber: "#7",
		TotalPrice:  1340,
		Deposit:     500,
		Customer: storefront.CustomerInfo{
			Name:  "Somchai",
			Phone: "0891234567",
		},
		Items: []storefront.OrderItem{
			{Name: "Figure <limited>", Price: 1290, Quantity: 1},
		},
	}

	t.Run("posts the email payload", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sink, err := notify.NewResendSink("re_test", "orders@example.com", "shop@example.com",
			notify.WithResendEndpoint(server.URL))
		require.NoError(t, err)

		err = sink.OrderReceived(context.Background(), event)
		require.NoError(t, err)

		assert.Equal(t, "Bearer re_test", gotAuth)
		assert.Equal(t, "orders@example.com", gotBody["from"])
		assert.Equal(t, []any{"shop@example.com"}, gotBody["to"])
		assert.Equal(t, "New order #7", gotBody["subject"])

		html := gotBody["html"].(string)
		assert.Contains(t, html, "#7")
		assert.Contains(t, html, "Somchai")
		assert.Contains(t, html, "Deposit paid: 500.00")
		assert.Contains(t, html, "Balance due: 840.00")
		assert.Contains(t, html, "Figure &lt;limited&gt;")
	})

	t.Run("event recipient overrides the default", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sink, err := notify.NewResendSink("re_test", "orders@example.com", "shop@example.com",
			notify.WithResendEndpoint(server.URL))
		require.NoError(t, err)

		custom := event
		custom.To = "customer@example.com"
		require.NoError(t, sink.OrderReceived(context.Background(), custom))
		assert.Equal(t, []any{"customer@example.com"}, gotBody["to"])
	})

	t.Run("api rejection surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		sink, err := notify.NewResendSink("re_bad", "orders@example.com", "shop@example.com",
			notify.WithResendEndpoint(server.URL))
		require.NoError(t, err)

		err = sink.OrderReceived(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing recipient is rejected", func(t *testing.T) {
		sink, err := notify.NewResendSink("re_test", "orders@example.com", "")
		require.NoError(t, err)

		err = sink.OrderReceived(context.Background(), storefront.OrderReceivedEvent{})
		assert.ErrorIs(t, err, storefront.ErrInvalidInput)
	})
}

func TestNoopSink(t *testing.T) {
	sink := notify.NewNoopSink()
	err := sink.OrderReceived(context.Background(), storefront.OrderReceivedEvent{OrderID: 1})
	assert.NoError(t, err)
}
