package errors

import (
	"testing"

	"muthurwa/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinValidation(t *testing.T) {
	t.Run("nothing failed", func(t *testing.T) {
		assert.NoError(t, JoinValidation(nil, nil))
	})

	t.Run("lists every field once", func(t *testing.T) {
		err := JoinValidation(
			NewValidationError(
				FieldError{Field: "name", Message: "is required"},
				FieldError{Field: "buyer_id", Message: "is required"},
			),
			nil,
			NewFieldError("buyer_id", "does not reference an accessible record"),
			NewFieldError("product_type_id", "does not reference an accessible record"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "buyer_id", Message: "is required"},
			{Field: "product_type_id", Message: "does not reference an accessible record"},
		}, vErr.Fields())
	})

	t.Run("other errors win", func(t *testing.T) {
		dbErr := NewDatabaseExecuteError(errors.New("connection reset"), "find buyer")

		err := JoinValidation(NewFieldError("name", "is required"), dbErr)
		assert.Equal(t, dbErr, err)
	})

	t.Run("wrapped validation errors are merged", func(t *testing.T) {
		err := JoinValidation(errors.Wrap(NewFieldError("phone", "is required"), "register"), NewFieldError("role", "is invalid"))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Len(t, vErr.Fields(), 2)
	})
}
