package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wishyoulucky/storefront/pkg/storefront"
)

const (
	defaultResendEndpoint = "https://api.resend.com/emails"
	defaultSendTimeout    = 10 * time.Second
)

// ResendSink delivers order-received notifications as transactional email
// through the Resend REST API.
type ResendSink struct {
	apiKey   string
	from     string
	to       string
	endpoint string
	client   *http.Client
}

// ResendOption configures a ResendSink
type ResendOption func(*ResendSink)

// WithResendEndpoint overrides the API endpoint (used in tests)
func WithResendEndpoint(endpoint string) ResendOption {
	return func(s *ResendSink) {
		s.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ResendOption {
	return func(s *ResendSink) {
		s.client = client
	}
}

// NewResendSink creates a sink that emails order summaries. The from address
// must belong to a domain verified with Resend. The to address receives every
// order notification; an event with its own To overrides it.
func NewResendSink(apiKey, from, to string, opts ...ResendOption) (*ResendSink, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: resend api key is required", storefront.ErrInvalidInput)
	}
	if from == "" {
		return nil, fmt.Errorf("%w: sender address is required", storefront.ErrInvalidInput)
	}

	s := &ResendSink{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: defaultResendEndpoint,
		client:   &http.Client{Timeout: defaultSendTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *ResendSink) OrderReceived(ctx context.Context, event storefront.OrderReceivedEvent) error {
	to := event.To
	if to == "" {
		to = s.to
	}
	if to == "" {
		return fmt.Errorf("%w: no recipient for order notification", storefront.ErrInvalidInput)
	}

	payload := resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: fmt.Sprintf("New order %s", event.OrderNumber),
		HTML:    renderOrderEmail(event),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send order notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend rejected notification: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func renderOrderEmail(event storefront.OrderReceivedEvent) string {
	var b strings.Builder
	b.WriteString("<h2>New order received</h2>")
	fmt.Fprintf(&b, "<p>Order number: <strong>%s</strong></p>", html(event.OrderNumber))

	if event.Customer.Name != "" {
		fmt.Fprintf(&b, "<p>Customer: %s", html(event.Customer.Name))
		if event.Customer.Phone != "" {
			fmt.Fprintf(&b, " (%s)", html(event.Customer.Phone))
		}
		b.WriteString("</p>")
	}
	if event.Customer.Address != "" {
		fmt.Fprintf(&b, "<p>Address: %s</p>", html(event.Customer.Address))
	}

	if len(event.Items) > 0 {
		b.WriteString("<ul>")
		for _, item := range event.Items {
			fmt.Fprintf(&b, "<li>%s x%d — %.2f</li>", html(item.Name), item.Quantity, item.Price*float64(item.Quantity))
		}
		b.WriteString("</ul>")
	}

	fmt.Fprintf(&b, "<p>Total: <strong>%.2f</strong></p>", event.TotalPrice)
	if event.Deposit > 0 {
		fmt.Fprintf(&b, "<p>Deposit paid: %.2f</p>", event.Deposit)
		fmt.Fprintf(&b, "<p>Balance due: %.2f</p>", event.TotalPrice-event.Deposit)
	} else if event.PaidAmount > 0 {
		fmt.Fprintf(&b, "<p>Paid in full: %.2f</p>", event.PaidAmount)
	}
	if event.PaymentMethod != "" {
		fmt.Fprintf(&b, "<p>Payment method: %s</p>", html(event.PaymentMethod))
	}
	return b.String()
}

func html(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
