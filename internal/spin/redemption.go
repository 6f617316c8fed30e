package spin

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// NewRedemptionCode returns a code like "K7QJ-2MXA-P4DT" read from r.
func NewRedemptionCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	buf := make([]byte, domain.RedemptionCodeBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf(ErrMsgRedemptionCode, err)
	}
	raw := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)[:domain.RedemptionCodeLength]

	groups := make([]string, 0, domain.RedemptionCodeLength/domain.RedemptionCodeGroupSize)
	for i := 0; i < len(raw); i += domain.RedemptionCodeGroupSize {
		groups = append(groups, raw[i:i+domain.RedemptionCodeGroupSize])
	}
	return strings.Join(groups, domain.RedemptionCodeSeparator), nil
}
