package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/apperrors"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(apperrors.NotFound("order %d not found", 7)))
	assert.Equal(t, apperrors.KindDuplicate, apperrors.KindOf(apperrors.Duplicate("slug taken")))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(apperrors.Validation("bad total")))
	assert.Equal(t, apperrors.KindInvalidReference, apperrors.KindOf(apperrors.InvalidReference("no such parent")))

	// Unclassified errors collapse to the store kind.
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("handling request: %w", apperrors.NotFound("gone"))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(wrapped))
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.Store("failed to load category", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load category")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, apperrors.IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, apperrors.IsDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, apperrors.IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, apperrors.IsDuplicateKey(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}))
	assert.False(t, apperrors.IsDuplicateKey(errors.New("boom")))
	assert.False(t, apperrors.IsDuplicateKey(nil))
}
