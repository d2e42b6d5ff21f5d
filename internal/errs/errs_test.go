package errs

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadRequest(t *testing.T) {
	err := BadRequest("%s is not a valid filter", "name")
	assert.EqualError(t, err, "name is not a valid filter")
	assert.True(t, IsBadRequest(err))
	assert.False(t, IsNotFound(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("No company: %s", "nope")
	assert.EqualError(t, err, "No company: nope")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsBadRequest(err))
}

func TestWrappedKindsAreDetected(t *testing.T) {
	err := fmt.Errorf("update job: %w", NotFound("No job: 7"))
	assert.True(t, IsNotFound(err))

	err = fmt.Errorf("create company: %w", BadRequest("Duplicate company: c1"))
	assert.True(t, IsBadRequest(err))
}

func TestStoreErrorsAreNeitherKind(t *testing.T) {
	assert.False(t, IsBadRequest(sql.ErrConnDone))
	assert.False(t, IsNotFound(sql.ErrNoRows))
}
