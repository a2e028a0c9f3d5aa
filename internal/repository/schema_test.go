package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type rawDoc bson.Raw

func (d rawDoc) Decode(v interface{}) error {
	return bson.Unmarshal(d, v)
}

func mustRaw(t *testing.T, doc bson.M) rawDoc {
	t.Helper()
	b, err := bson.Marshal(doc)
	require.NoError(t, err)
	return rawDoc(b)
}

func TestDecodeDocument(t *testing.T) {
	id := uuid.NewString()

	t.Run("valid product", func(t *testing.T) {
		doc := mustRaw(t, bson.M{"id": id, "name": "Hoodie", "price": 199.9, "stock": 3, "created_at": time.Now()})
		p, err := decodeDocument[models.Product]("products", doc)
		require.NoError(t, err)
		assert.Equal(t, "Hoodie", p.Name)
		assert.Equal(t, 3, p.Stock)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		doc := mustRaw(t, bson.M{"id": id, "name": "Hoodie", "price": 10.0, "stock": -1})
		_, err := decodeDocument[models.Product]("products", doc)

		var schemaErr *SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "products", schemaErr.Collection)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		doc := mustRaw(t, bson.M{"name": "Hoodie", "price": 10.0, "stock": 1})
		_, err := decodeDocument[models.Product]("products", doc)

		var schemaErr *SchemaError
		assert.True(t, errors.As(err, &schemaErr))
	})

	t.Run("wrong field type is rejected", func(t *testing.T) {
		doc := mustRaw(t, bson.M{"id": id, "name": "Hoodie", "price": "cheap", "stock": 1})
		_, err := decodeDocument[models.Product]("products", doc)

		var schemaErr *SchemaError
		assert.True(t, errors.As(err, &schemaErr))
	})

	t.Run("cart items are validated", func(t *testing.T) {
		doc := mustRaw(t, bson.M{
			"id":      id,
			"user_id": "u1",
			"items":   bson.A{bson.M{"product_id": "p1", "quantity": 0}},
		})
		_, err := decodeDocument[models.Cart]("carts", doc)

		var schemaErr *SchemaError
		assert.True(t, errors.As(err, &schemaErr))
	})
}

func TestCheckSchemaOnWrite(t *testing.T) {
	n := &models.Notification{
		ID:          uuid.NewString(),
		Kind:        models.NotificationKindOrderConfirmation,
		Recipient:   "not-an-email",
		Subject:     "hi",
		Status:      models.NotificationStatusPending,
		MaxAttempts: 3,
	}
	err := checkSchema("notifications", n)

	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	n.Recipient = "buyer@example.com"
	assert.NoError(t, checkSchema("notifications", n))
}
