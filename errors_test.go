package fat16_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embeddedfat/fat16core"
)

func TestFSErrorWithMessage(t *testing.T) {
	newErr := fat16.ErrDirectoryFull.WithMessage("no slots left")
	assert.Equal(t, "root directory has no free slots: no slots left", newErr.Error())
	assert.ErrorIs(t, newErr, fat16.ErrDirectoryFull)
}

func TestFSErrorWrap(t *testing.T) {
	original := errors.New("disk read failed")
	wrapped := fat16.ErrRangeInvalid.WrapError(original)

	assert.ErrorIs(t, wrapped, original)
	assert.ErrorIs(t, wrapped, fat16.ErrRangeInvalid)
	assert.NotErrorIs(t, wrapped, fat16.ErrCursorAhead)
}
