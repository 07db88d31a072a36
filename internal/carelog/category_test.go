package carelog

import (
	"testing"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Bidirectional(t *testing.T) {
	for _, c := range Categories {
		t.Run(c.String(), func(t *testing.T) {
			byName, err := ParseCategory(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, byName)

			byWire, err := CategoryFromUint8(uint8(c))
			require.NoError(t, err)
			assert.Equal(t, c, byWire)
			assert.True(t, c.Valid())
		})
	}
}

func TestCategory_OutOfRange(t *testing.T) {
	_, err := CategoryFromUint8(3)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = CategoryFromUint32(256)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = ParseCategory("grooming")
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.False(t, Category(3).Valid())
	assert.Equal(t, "Category(3)", Category(3).String())
}

func TestParseCategory_Forms(t *testing.T) {
	c, err := ParseCategory(" Medication ")
	require.NoError(t, err)
	assert.Equal(t, Medication, c)

	c, err = ParseCategory("2")
	require.NoError(t, err)
	assert.Equal(t, Activity, c)
}
