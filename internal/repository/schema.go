package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matched the query.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// SchemaError reports a document that does not match its model, either
// because it could not be decoded or because it failed validation.
type SchemaError struct {
	Collection string
	Err        error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation in %s: %v", e.Collection, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

var validate = validator.New()

// checkSchema validates a model against its `validate` tags.
func checkSchema(collection string, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return &SchemaError{Collection: collection, Err: err}
	}
	return nil
}

type decoder interface {
	Decode(v interface{}) error
}

// decodeDocument decodes and validates a single document.
func decodeDocument[T any](collection string, d decoder) (*T, error) {
	var out T
	if err := d.Decode(&out); err != nil {
		return nil, &SchemaError{Collection: collection, Err: err}
	}
	if err := checkSchema(collection, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// findOne runs the single-result query and converts its outcome into a
// validated model or one of ErrNotFound / *SchemaError.
func findOne[T any](collection string, res *mongo.SingleResult) (*T, error) {
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeDocument[T](collection, res)
}

// decodeAll drains the cursor, validating every document.
func decodeAll[T any](ctx context.Context, collection string, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)

	out := make([]T, 0)
	for cursor.Next(ctx) {
		doc, err := decodeDocument[T](collection, cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
