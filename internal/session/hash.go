package session

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// ReplayHash is the keyed BLAKE2b-256 digest that identifies one physical
// scan. The timestamp is truncated to seconds, so a client resubmitting the
// same scan gets the same hash. The location is compared in its
// domain.NormalizeLocation form.
func ReplayHash(key []byte, playerID, businessID, location string, scannedAt time.Time) (string, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf(ErrMsgHashFailed, err)
	}
	for _, part := range []string{
		playerID,
		businessID,
		domain.NormalizeLocation(location),
		strconv.FormatInt(scannedAt.Truncate(time.Second).Unix(), 10),
	} {
		// length prefix keeps ("ab","c") and ("a","bc") apart
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
