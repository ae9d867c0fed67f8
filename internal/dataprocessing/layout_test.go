package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bridgesched/internal/errors"
)

func TestMasterScheduleLayout(t *testing.T) {
	l := MasterScheduleLayout

	assert.Equal(t, 0, l.County)
	assert.Equal(t, 1, l.BIN)
	assert.Equal(t, 2, l.FeatureCarried)
	assert.Equal(t, 3, l.FeatureCrossed)
	assert.Equal(t, 5, l.DueDate)
	assert.Equal(t, 9, l.BookedAccess)
	assert.Equal(t, 16, l.Access)
	assert.Equal(t, 19, l.Town)

	// BIN and booked access are the mandatory columns.
	assert.Equal(t, 10, l.RequiredWidth())
}

func TestColumnLayout_CheckWidth(t *testing.T) {
	l := MasterScheduleLayout

	t.Run("wide enough", func(t *testing.T) {
		row := make([]string, l.RequiredWidth())
		assert.NoError(t, l.CheckWidth(1, row))
	})

	t.Run("too narrow", func(t *testing.T) {
		err := l.CheckWidth(7, make([]string, 4))
		var widthErr *apperrors.RowWidthError
		require.ErrorAs(t, err, &widthErr)
		assert.Equal(t, 7, widthErr.Row)
		assert.Equal(t, 4, widthErr.Width)
		assert.Equal(t, 10, widthErr.Required)
		assert.Contains(t, err.Error(), "row 7")
	})
}

func TestCell(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", cell(row, 0))
	assert.Equal(t, "b", cell(row, 1))
	assert.Equal(t, "", cell(row, 2))
	assert.Equal(t, "", cell(row, -1))
}
