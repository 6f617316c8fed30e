package spin

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z2-7]{4}-[A-Z2-7]{4}-[A-Z2-7]{4}$`)

func TestNewRedemptionCode(t *testing.T) {
	code, err := NewRedemptionCode(bytes.NewReader(make([]byte, 10)))
	require.NoError(t, err)
	assert.Equal(t, "AAAA-AAAA-AAAA", code)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewRedemptionCode(nil)
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
		seen[code] = true
	}
	assert.Len(t, seen, 100)

	_, err = NewRedemptionCode(bytes.NewReader([]byte{1}))
	assert.Error(t, err)
}
