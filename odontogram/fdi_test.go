package odontogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTeeth_AdultSet(t *testing.T) {
	teeth := AllTeeth()
	assert.Len(t, teeth, 32)
	seen := map[int]bool{}
	for _, n := range teeth {
		assert.True(t, IsValidTooth(n), "tooth %d", n)
		assert.False(t, seen[n], "duplicate tooth %d", n)
		seen[n] = true
	}
}

func TestParseTooth(t *testing.T) {
	n, err := ParseTooth(" 36 ")
	require.NoError(t, err)
	assert.Equal(t, 36, n)

	for _, bad := range []string{"", "x1", "19", "50", "10", "09"} {
		_, err := ParseTooth(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsValidToothLabel(t *testing.T) {
	assert.True(t, IsValidToothLabel("General"))
	assert.True(t, IsValidToothLabel("general"))
	assert.True(t, IsValidToothLabel("48"))
	assert.False(t, IsValidToothLabel("49"))
}

func TestArchAndKind(t *testing.T) {
	assert.Equal(t, ArchUpper, ArchOf(11))
	assert.Equal(t, ArchUpper, ArchOf(28))
	assert.Equal(t, ArchLower, ArchOf(36))
	assert.Equal(t, ArchLower, ArchOf(41))

	assert.Equal(t, KindIncisor, KindOf(11))
	assert.Equal(t, KindIncisor, KindOf(42))
	assert.Equal(t, KindCanine, KindOf(23))
	assert.Equal(t, KindPremolar, KindOf(35))
	assert.Equal(t, KindMolar, KindOf(36))
	assert.Equal(t, KindMolar, KindOf(18))

	assert.True(t, OnViewerLeft(16))
	assert.True(t, OnViewerLeft(46))
	assert.False(t, OnViewerLeft(26))
	assert.False(t, OnViewerLeft(36))
}

func TestSpanTeeth_CrossesMidline(t *testing.T) {
	span, err := SpanTeeth(12, 22)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 21, 22}, span)

	reversed, err := SpanTeeth(22, 12)
	require.NoError(t, err)
	assert.Equal(t, span, reversed)
}

func TestSpanTeeth_SingleTooth(t *testing.T) {
	span, err := SpanTeeth(36, 36)
	require.NoError(t, err)
	assert.Equal(t, []int{36}, span)
}

func TestSpanTeeth_RejectsCrossArch(t *testing.T) {
	_, err := SpanTeeth(11, 41)
	assert.Error(t, err)
	_, err = SpanTeeth(11, 99)
	assert.Error(t, err)
}
