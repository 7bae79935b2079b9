package eccpem

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
)

// PublicKey represents elliptic curve cryptography public key.
type PublicKey struct {
	publicKey *ecdsa.PublicKey
}

// NewPublicKeyFromPoint creates a public key from the (x, y) coordinates.
func NewPublicKeyFromPoint(curve EllipticCurve, x, y *big.Int) *PublicKey {
	return &PublicKey{publicKey: &ecdsa.PublicKey{
		Curve: getCurve(curve),
		X:     x,
		Y:     y}}
}

// NewPublicKeyFromCompressedBytes creates a public key from its SEC1
// compressed serialization, recovering the y coordinate.
func NewPublicKeyFromCompressedBytes(curve EllipticCurve, b []byte) (*PublicKey, error) {
	params := curve.Params()
	if params == nil {
		return nil, ErrUnknownCurve
	}
	x, y, err := DecodePoint(b, params)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromPoint(curve, x, y), nil
}

// CompressedBytes returns the public key serialized in SEC1 compressed
// format. The result is 33 bytes long for the supported curves.
func (pbk *PublicKey) CompressedBytes() ([]byte, error) {
	return EncodePoint(pbk.publicKey.X, pbk.publicKey.Y, pbk.Curve().Params())
}

// Curve returns the elliptic curve for this public key.
func (pbk *PublicKey) Curve() EllipticCurve {
	if pbk.publicKey.Curve == btcec.S256() {
		return SECP256K1
	}
	if pbk.publicKey.Curve == elliptic.P256() {
		return PRIME256V1
	}
	return INVALID_CURVE
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return pbk.publicKey.X
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return pbk.publicKey.Y
}

// BitcoinAddress returns the Bitcoin address for this public key.
// Unless the public key is on SECP256K1 curve, ErrUnsupportedCurve is returned.
func (pbk *PublicKey) BitcoinAddress() (string, error) {
	if pbk.Curve() != SECP256K1 {
		return "", ErrUnsupportedCurve
	}
	s, err := pbk.CompressedBytes()
	if err != nil {
		return "", err
	}
	prefix := []byte{0x00}
	hash := Hash160(s)
	s1 := bytes.Join([][]byte{prefix, hash}, nil)
	checkSum := Hash256(s1)[0:4]
	addr := bytes.Join([][]byte{s1, checkSum}, nil)
	return base58.Encode(addr), nil
}

// EthereumAddress returns an Ethereum address for this public key.
// Unless the public key is on SECP256K1 curve, ErrUnsupportedCurve is returned.
func (pbk *PublicKey) EthereumAddress() (string, error) {
	if pbk.Curve() != SECP256K1 {
		return "", ErrUnsupportedCurve
	}
	return crypto.PubkeyToAddress(*pbk.publicKey).Hex(), nil
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.publicKey.X.Cmp(other.publicKey.X) == 0 &&
		pbk.publicKey.Y.Cmp(other.publicKey.Y) == 0
}

// ToECDSA returns this key as crypto/ecdsa public key.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return pbk.publicKey
}
