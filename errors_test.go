package pagesift_test

import (
	"errors"
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns the code of an application error", func(t *testing.T) {
		t.Parallel()

		err := pagesift.Errorf(pagesift.ENOTFOUND, "template %q not found", "missing")
		assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	})

	t.Run("returns empty for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", pagesift.ErrorCode(nil))
	})

	t.Run("returns internal for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagesift.EINTERNAL, pagesift.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns the message of an application error", func(t *testing.T) {
		t.Parallel()

		err := pagesift.Errorf(pagesift.EINVALID, "field name required")
		assert.Equal(t, "field name required", pagesift.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Internal error.", pagesift.ErrorMessage(errors.New("boom")))
	})
}
