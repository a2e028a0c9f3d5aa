package payments

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80/webhook"
)

func TestBuildSessionParams(t *testing.T) {
	req := SessionRequest{
		Currency:   "brl",
		SuccessURL: "https://shop.example.com/?payment=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example.com/?payment=cancelled",
		Items: []LineItem{
			{Name: "Oversized Tee", UnitPrice: 89.9, Quantity: 2},
			{Name: "Cap", UnitPrice: 0.29, Quantity: 1},
		},
		Metadata: map[string]string{
			"user_email": "guest",
			"items":      strings.Repeat("x", maxMetadataValueLen+1),
		},
	}

	params := buildSessionParams(req)

	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, req.SuccessURL, *params.SuccessURL)
	require.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(8990), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *params.LineItems[0].Quantity)
	assert.Equal(t, int64(29), *params.LineItems[1].PriceData.UnitAmount)
	assert.Equal(t, "brl", *params.LineItems[1].PriceData.Currency)

	assert.Equal(t, "guest", params.Metadata["user_email"])
	_, hasItems := params.Metadata["items"]
	assert.False(t, hasItems)
}

func TestParseWebhook(t *testing.T) {
	const secret = "whsec_test"
	g := &StripeGateway{webhookKey: secret}

	payload := []byte(`{"id":"evt_1","object":"event","api_version":"2024-06-20","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session"}}}`)

	t.Run("valid signature", func(t *testing.T) {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   payload,
			Secret:    secret,
			Timestamp: time.Now(),
		})

		event, err := g.ParseWebhook(signed.Payload, signed.Header)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, "checkout.session.completed", event.Type)
		assert.Equal(t, "cs_test_1", event.SessionID)
	})

	t.Run("bad signature", func(t *testing.T) {
		header := fmt.Sprintf("t=%d,v1=deadbeef", time.Now().Unix())
		_, err := g.ParseWebhook(payload, header)
		assert.Error(t, err)
	})

	t.Run("no secret configured", func(t *testing.T) {
		_, err := (&StripeGateway{}).ParseWebhook(payload, "t=1,v1=x")
		assert.ErrorIs(t, err, ErrWebhookNotConfigured)
	})
}
