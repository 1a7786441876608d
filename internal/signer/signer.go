// Package signer wraps a single secp256k1 secret scalar for signing
// paymaster message hashes.
package signer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs 32-byte message hashes. Signing is a pure function of
// (hash, key), so one Signer is safe for any number of concurrent
// submissions.
type Signer struct {
	key *ecdsa.PrivateKey
}

// FromHex parses a hex-encoded secret scalar, with or without a 0x prefix.
// Short keys are left-padded to 32 bytes.
func FromHex(raw string) (*Signer, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if trimmed == "" {
		return nil, errors.New("private key is empty")
	}
	if len(trimmed) > 64 {
		return nil, fmt.Errorf("private key too long: %d hex chars", len(trimmed))
	}
	for len(trimmed) < 64 {
		trimmed = "0" + trimmed
	}

	key, err := crypto.HexToECDSA(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Signer{key: key}, nil
}

// Sign produces the (r, s) signature pair over a message hash, hex encoded
// the way the paymaster execute endpoint expects signature elements.
func (s *Signer) Sign(hash common.Hash) (string, string, error) {
	sig, err := crypto.Sign(hash[:], s.key)
	if err != nil {
		return "", "", fmt.Errorf("sign message hash: %w", err)
	}
	return hexutil.Encode(sig[:32]), hexutil.Encode(sig[32:64]), nil
}
