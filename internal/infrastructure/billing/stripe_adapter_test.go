package billing

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/form"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	domainbilling "github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/infrastructure/config"
)

// mockBackend implements stripe.Backend for testing
type mockBackend struct {
	handler func(method, path string, params stripe.ParamsContainer) ([]byte, error)
}

func (m *mockBackend) Call(method, path, key string, params stripe.ParamsContainer, v stripe.LastResponseSetter) error {
	data, err := m.handler(method, path, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (m *mockBackend) CallStreaming(method, path, key string, params stripe.ParamsContainer, v stripe.StreamingLastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallRaw(method, path, key string, body *form.Values, params *stripe.Params, v stripe.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallMultipart(method, path, key, boundary string, body *bytes.Buffer, params *stripe.Params, v stripe.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) SetMaxNetworkRetries(maxNetworkRetries int64) {}

func testStripeConfig() config.StripeConfig {
	return config.StripeConfig{
		SecretKey:      "sk_test_123456789",
		WebhookSecret:  "whsec_test_123456789",
		StarterPriceID: "price_starter_test",
		ProPriceID:     "price_pro_test",
		PortalReturn:   "https://app.example.com/settings/billing",
		CheckoutOK:     "https://app.example.com/billing/success",
		CheckoutCancel: "https://app.example.com/billing/cancel",
	}
}

// setupMockBackend installs a mock Stripe backend for the duration of a test
func setupMockBackend(handler func(method, path string, params stripe.ParamsContainer) ([]byte, error)) func() {
	mock := &mockBackend{handler: handler}
	stripe.SetBackend(stripe.APIBackend, mock)
	return func() {
		stripe.SetBackend(stripe.APIBackend, nil)
	}
}

func newTestAdapter(t *testing.T) *StripeAdapter {
	t.Helper()
	adapter, err := NewStripeAdapter(testStripeConfig(), zap.NewNop())
	require.NoError(t, err)
	return adapter
}

func TestNewStripeAdapter_Success(t *testing.T) {
	adapter, err := NewStripeAdapter(testStripeConfig(), zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestNewStripeAdapter_InvalidConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.StripeConfig)
		expectedErr string
	}{
		{
			name:        "missing secret key",
			mutate:      func(c *config.StripeConfig) { c.SecretKey = "" },
			expectedErr: "secret key is required",
		},
		{
			name:        "malformed secret key",
			mutate:      func(c *config.StripeConfig) { c.SecretKey = "pk_test_123" },
			expectedErr: "does not look like a secret key",
		},
		{
			name:        "missing webhook secret",
			mutate:      func(c *config.StripeConfig) { c.WebhookSecret = "" },
			expectedErr: "webhook secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testStripeConfig()
			tt.mutate(&cfg)

			adapter, err := NewStripeAdapter(cfg, zap.NewNop())

			require.Error(t, err)
			assert.Nil(t, adapter)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestPriceForPlan(t *testing.T) {
	adapter := newTestAdapter(t)

	tests := []struct {
		plan        string
		wantPrice   string
		expectedErr string
	}{
		{plan: "starter", wantPrice: "price_starter_test"},
		{plan: "pro", wantPrice: "price_pro_test"},
		{plan: "free", expectedErr: "no checkout"},
		{plan: "enterprise", expectedErr: "no price ID configured"},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			priceID, err := adapter.PriceForPlan(tt.plan)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, priceID)
		})
	}
}

func TestPriceForPlan_Unconfigured(t *testing.T) {
	cfg := testStripeConfig()
	cfg.ProPriceID = ""
	adapter, err := NewStripeAdapter(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = adapter.PriceForPlan("pro")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "price ID not set")
}

func TestCreateCustomer_Success(t *testing.T) {
	tenantID := uuid.New()

	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "POST", method)
		assert.Equal(t, "/v1/customers", path)
		return json.Marshal(map[string]any{
			"id":      "cus_test_123",
			"email":   "owner@acme.test",
			"name":    "Acme Builders",
			"created": time.Now().Unix(),
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CreateCustomer(context.Background(), CreateCustomerInput{
		TenantID: tenantID,
		Email:    "owner@acme.test",
		Name:     "Acme Builders",
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_test_123", out.CustomerID)
	assert.Equal(t, "owner@acme.test", out.Email)
	assert.Equal(t, "Acme Builders", out.Name)
}

func TestCreateCustomer_APIError(t *testing.T) {
	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		return nil, fmt.Errorf("api unavailable")
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CreateCustomer(context.Background(), CreateCustomerInput{
		TenantID: uuid.New(),
		Email:    "owner@acme.test",
		Name:     "Acme Builders",
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "failed to create customer")
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "POST", method)
		assert.Equal(t, "/v1/checkout/sessions", path)
		return json.Marshal(map[string]any{
			"id":  "cs_test_123",
			"url": "https://checkout.stripe.com/c/pay/cs_test_123",
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CreateCheckoutSession(context.Background(), CreateCheckoutSessionInput{
		TenantID:   uuid.New(),
		CustomerID: "cus_test_123",
		Plan:       "pro",
		TrialDays:  14,
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", out.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", out.URL)
}

func TestCreateCheckoutSession_UnknownPlan(t *testing.T) {
	adapter := newTestAdapter(t)

	out, err := adapter.CreateCheckoutSession(context.Background(), CreateCheckoutSessionInput{
		TenantID:   uuid.New(),
		CustomerID: "cus_test_123",
		Plan:       "platinum",
	})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestCreatePortalSession_Success(t *testing.T) {
	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "POST", method)
		assert.Equal(t, "/v1/billing_portal/sessions", path)
		return json.Marshal(map[string]any{
			"url": "https://billing.stripe.com/p/session/test_123",
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CreatePortalSession(context.Background(), CreatePortalSessionInput{
		TenantID:   uuid.New(),
		CustomerID: "cus_test_123",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://billing.stripe.com/p/session/test_123", out.URL)
}

func TestCancelSubscription_AtPeriodEnd(t *testing.T) {
	periodEnd := time.Now().Add(20 * 24 * time.Hour).Unix()

	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "POST", method)
		assert.Equal(t, "/v1/subscriptions/sub_test_123", path)
		return json.Marshal(map[string]any{
			"id":                   "sub_test_123",
			"status":               "active",
			"cancel_at_period_end": true,
			"current_period_end":   periodEnd,
			"customer":             map[string]any{"id": "cus_test_123"},
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CancelSubscription(context.Background(), CancelSubscriptionInput{
		TenantID:       uuid.New(),
		SubscriptionID: "sub_test_123",
		AtPeriodEnd:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, "sub_test_123", out.SubscriptionID)
	assert.Equal(t, domainbilling.SubscriptionStatusActive, out.Status)
	assert.True(t, out.CancelAtPeriodEnd)
	require.NotNil(t, out.CurrentPeriodEnd)
	assert.Equal(t, periodEnd, out.CurrentPeriodEnd.Unix())
}

func TestCancelSubscription_Immediate(t *testing.T) {
	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "DELETE", method)
		assert.Equal(t, "/v1/subscriptions/sub_test_123", path)
		return json.Marshal(map[string]any{
			"id":     "sub_test_123",
			"status": "canceled",
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.CancelSubscription(context.Background(), CancelSubscriptionInput{
		TenantID:       uuid.New(),
		SubscriptionID: "sub_test_123",
		AtPeriodEnd:    false,
	})

	require.NoError(t, err)
	assert.Equal(t, domainbilling.SubscriptionStatusCanceled, out.Status)
}

func TestGetSubscription_Success(t *testing.T) {
	cleanup := setupMockBackend(func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, "GET", method)
		assert.Equal(t, "/v1/subscriptions/sub_test_123", path)
		return json.Marshal(map[string]any{
			"id":     "sub_test_123",
			"status": "trialing",
			"items": map[string]any{
				"data": []map[string]any{
					{"price": map[string]any{"id": "price_pro_test"}},
				},
			},
			"metadata": map[string]string{
				"tenant_id": "b2f9c9a0-0000-0000-0000-000000000001",
				"plan":      "pro",
			},
		})
	})
	defer cleanup()

	adapter := newTestAdapter(t)

	out, err := adapter.GetSubscription(context.Background(), "sub_test_123")

	require.NoError(t, err)
	assert.Equal(t, domainbilling.SubscriptionStatusTrialing, out.Status)
	assert.Equal(t, "price_pro_test", out.PriceID)
	assert.Equal(t, "pro", out.Plan)
	assert.Equal(t, "b2f9c9a0-0000-0000-0000-000000000001", out.TenantID)
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	adapter := newTestAdapter(t)

	// api_version is whatever the Stripe account is pinned to, not what the
	// SDK ships with; verification must tolerate the difference.
	payload := []byte(`{"id":"evt_test_123","api_version":"2023-10-16","type":"customer.subscription.updated","data":{"object":{"id":"sub_test_123","status":"active"}}}`)
	now := time.Now()
	signature := webhook.ComputeSignature(now, payload, testStripeConfig().WebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(signature))

	event, err := adapter.VerifyWebhook(payload, header)

	require.NoError(t, err)
	assert.Equal(t, "evt_test_123", event.ID)
	assert.Equal(t, "customer.subscription.updated", string(event.Type))
}

func TestVerifyWebhook_InvalidSignature(t *testing.T) {
	adapter := newTestAdapter(t)

	payload := []byte(`{"id":"evt_test_123"}`)

	_, err := adapter.VerifyWebhook(payload, "t=1,v1=deadbeef")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature verification failed")
}

func TestSubscriptionStateFromEvent(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "sub_test_123",
		"status": "past_due",
		"cancel_at_period_end": false,
		"customer": {"id": "cus_test_123"},
		"metadata": {"tenant_id": "tid", "plan": "starter"}
	}`)
	event := stripe.Event{
		ID:   "evt_test_123",
		Data: &stripe.EventData{Raw: raw},
	}

	state, err := SubscriptionStateFromEvent(event)

	require.NoError(t, err)
	assert.Equal(t, "sub_test_123", state.SubscriptionID)
	assert.Equal(t, "cus_test_123", state.CustomerID)
	assert.Equal(t, domainbilling.SubscriptionStatusPastDue, state.Status)
	assert.Equal(t, "starter", state.Plan)
}

func TestSubscriptionStateFromEvent_Garbage(t *testing.T) {
	event := stripe.Event{
		ID:   "evt_test_123",
		Data: &stripe.EventData{Raw: json.RawMessage(`not json`)},
	}

	_, err := SubscriptionStateFromEvent(event)

	require.Error(t, err)
}

func TestMapSubscriptionStatus(t *testing.T) {
	tests := []struct {
		stripeStatus stripe.SubscriptionStatus
		want         domainbilling.SubscriptionStatus
	}{
		{stripe.SubscriptionStatusActive, domainbilling.SubscriptionStatusActive},
		{stripe.SubscriptionStatusTrialing, domainbilling.SubscriptionStatusTrialing},
		{stripe.SubscriptionStatusPastDue, domainbilling.SubscriptionStatusPastDue},
		{stripe.SubscriptionStatusIncomplete, domainbilling.SubscriptionStatusPastDue},
		{stripe.SubscriptionStatusUnpaid, domainbilling.SubscriptionStatusPastDue},
		{stripe.SubscriptionStatusCanceled, domainbilling.SubscriptionStatusCanceled},
		{stripe.SubscriptionStatusIncompleteExpired, domainbilling.SubscriptionStatusCanceled},
	}

	for _, tt := range tests {
		t.Run(string(tt.stripeStatus), func(t *testing.T) {
			assert.Equal(t, tt.want, MapSubscriptionStatus(tt.stripeStatus))
		})
	}
}
