package repository_test

import (
	"errors"
	"fmt"
	"hotel/shared/repository"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPqErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert room: %w", &pq.Error{Code: "23505"})
	foreign := fmt.Errorf("insert room: %w", &pq.Error{Code: "23503"})

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.False(t, repository.IsForeignKeyViolation(unique))

	assert.True(t, repository.IsForeignKeyViolation(foreign))
	assert.False(t, repository.IsUniqueViolation(foreign))

	assert.False(t, repository.IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, repository.IsForeignKeyViolation(nil))
}
