package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"jobboard-service/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	t.Run("TaxonomyError_PassedThrough", func(t *testing.T) {
		err := apperr.NotFound("Job not found")
		e := apperr.From(err)
		assert.Equal(t, apperr.CodeNotFound, e.Code)
		assert.Equal(t, http.StatusNotFound, e.Status)
		assert.Equal(t, "Job not found", e.Message)
	})

	t.Run("WrappedError_Unwrapped", func(t *testing.T) {
		err := fmt.Errorf("loading job: %w", apperr.AlreadyApplied())
		e := apperr.From(err)
		assert.Equal(t, apperr.CodeAlreadyApplied, e.Code)
	})

	t.Run("UnknownError_MaskedAsServerError", func(t *testing.T) {
		e := apperr.From(errors.New("pq: connection refused"))
		assert.Equal(t, apperr.CodeServer, e.Code)
		assert.Equal(t, http.StatusInternalServerError, e.Status)
		assert.Equal(t, "Server error", e.Message)
	})
}

func TestIs(t *testing.T) {
	assert.True(t, apperr.Is(apperr.InvalidCredentials(), apperr.CodeInvalidCredentials))
	assert.False(t, apperr.Is(apperr.InvalidCredentials(), apperr.CodeNotFound))
	assert.False(t, apperr.Is(errors.New("other"), apperr.CodeNotFound))
}

func TestDuplicate(t *testing.T) {
	e := apperr.Duplicate("email")
	assert.Equal(t, "email", e.Field)
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "Duplicate entry: email already exists", e.Message)
}
