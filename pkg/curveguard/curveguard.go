// Package curveguard validates raw scalars against the secp256k1 group
// order before any key pair is built from them.
package curveguard

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyLen is the required scalar length in bytes.
const KeyLen = 32

var (
	ErrBadLength  = errors.New("private key must be exactly 32 bytes")
	ErrZeroScalar = errors.New("private key scalar is zero")
	ErrAboveOrder = errors.New("private key scalar is not below the curve order")
)

// Validate reports whether b is a legal secp256k1 private key: exactly 32
// bytes, non-zero, and strictly below the group order. Every parser that
// produces raw key bytes must call this before constructing a key pair.
func Validate(b []byte) error {
	if len(b) != KeyLen {
		return ErrBadLength
	}

	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return ErrZeroScalar
	}

	scalar := new(big.Int).SetBytes(b)
	if scalar.Cmp(btcec.S256().N) >= 0 {
		return ErrAboveOrder
	}

	return nil
}
