package eccpem

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PublicKey_FromCompressedBytes(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key, err := NewPrivateKey(curve)
		assert.NoError(err)
		publicKey := key.PublicKey()

		serialized, err := publicKey.CompressedBytes()
		assert.NoError(err)

		publicKey1, err := NewPublicKeyFromCompressedBytes(curve, serialized)
		assert.NoError(err)
		assert.True(publicKey.Equal(publicKey1))
	}

	_, err := NewPublicKeyFromCompressedBytes(EllipticCurve(999), make([]byte, 33))
	assert.ErrorIs(err, ErrUnknownCurve)
}

func Test_PublicKey_Curve(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key := NewPrivateKeyFromSecret(curve, big.NewInt(5001))
		assert.Equal(curve, key.PublicKey().Curve())
	}
}

func Test_PublicKey_BitcoinAddress(t *testing.T) {
	assert := assert.New(t)

	secret, _ := new(big.Int).SetString("12345deadbeef", 16)
	key := NewPrivateKeyFromSecret(SECP256K1, secret)
	address, err := key.PublicKey().BitcoinAddress()
	assert.NoError(err)
	assert.Equal("1F1Pn2y6pDb68E5nYJJeba4TLg2U7B6KF1", address)

	// Not available on prime256v1.
	key = NewPrivateKeyFromSecret(PRIME256V1, secret)
	_, err = key.PublicKey().BitcoinAddress()
	assert.Equal(ErrUnsupportedCurve, err)
}

func Test_PublicKey_EthereumAddress(t *testing.T) {
	assert := assert.New(t)

	key := NewPrivateKeyFromSecret(SECP256K1, big.NewInt(5001))
	address, err := key.PublicKey().EthereumAddress()
	assert.NoError(err)
	assert.Equal(42, len(address))
	assert.Equal("0x", address[:2])

	key = NewPrivateKeyFromSecret(PRIME256V1, big.NewInt(5001))
	_, err = key.PublicKey().EthereumAddress()
	assert.Equal(ErrUnsupportedCurve, err)
}

func Test_PublicKey_Equal(t *testing.T) {
	assert := assert.New(t)

	key1, err := NewPrivateKey(SECP256K1)
	assert.NoError(err)
	key2, err := NewPrivateKey(SECP256K1)
	assert.NoError(err)

	assert.True(key1.PublicKey().Equal(key1.PublicKey()))
	assert.False(key1.PublicKey().Equal(key2.PublicKey()))
	assert.False(key1.PublicKey().Equal(nil))
}
