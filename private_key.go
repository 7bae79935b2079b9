package eccpem

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/tyler-smith/go-bip39"
)

// PrivateKey represents elliptic cryptography private key.
type PrivateKey struct {
	privateKey *ecdsa.PrivateKey
}

// NewPrivateKey creates a new random private key,
// given a curve.
func NewPrivateKey(curve EllipticCurve) (*PrivateKey, error) {
	c := getCurve(curve)
	if c == nil {
		return nil, ErrUnknownCurve
	}
	privateKey, err := ecdsa.GenerateKey(c, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key, %v", err)
	}
	return &PrivateKey{privateKey: privateKey}, nil
}

// NewPrivateKeyFromSecret creates a private key on the given curve from secret.
func NewPrivateKeyFromSecret(curve EllipticCurve, secret *big.Int) *PrivateKey {
	privateKey := &ecdsa.PrivateKey{
		D: secret}
	privateKey.PublicKey.Curve = getCurve(curve)
	privateKey.PublicKey.X, privateKey.PublicKey.Y =
		privateKey.PublicKey.Curve.ScalarBaseMult(secret.Bytes())
	return &PrivateKey{privateKey: privateKey}
}

// NewPrivateKeyFromMnemonic creates private key on given curve from a mnemonic phrase.
func NewPrivateKeyFromMnemonic(curve EllipticCurve, mnemonic string) (*PrivateKey, error) {
	if getCurve(curve) == nil {
		return nil, ErrUnknownCurve
	}
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	secret := new(big.Int).SetBytes(b)
	return NewPrivateKeyFromSecret(curve, secret), nil
}

// Secret returns the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return pk.privateKey.D
}

// Bytes returns the secret serialized as exactly the curve's byte width,
// zero-padded on the left.
func (pk *PrivateKey) Bytes() ([]byte, error) {
	return EncodeScalar(pk.privateKey.D, pk.Curve().Params())
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{publicKey: &pk.privateKey.PublicKey}
}

// Curve returns the elliptic curve for this private key.
func (pk *PrivateKey) Curve() EllipticCurve {
	if pk.privateKey.Curve == btcec.S256() {
		return SECP256K1
	}
	if pk.privateKey.Curve == elliptic.P256() {
		return PRIME256V1
	}
	return INVALID_CURVE
}

// Mnemonic returns a mnemonic phrase which can be used to recover this private key.
func (pk *PrivateKey) Mnemonic() (string, error) {
	return bip39.NewMnemonic(padWithZeros(pk.privateKey.D.Bytes(),
		pk.Curve().Params().ByteWidth))
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	return pk.privateKey.D.Cmp(other.privateKey.D) == 0
}

// ToECDSA returns this key as crypto/ecdsa private key.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return pk.privateKey
}
