package eccpem

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PrivateKey_NewRandom(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		pk, err := NewPrivateKey(curve)
		assert.NoError(err)
		assert.NotNil(pk)
		assert.True(pk.Secret().Sign() > 0)
	}

	_, err := NewPrivateKey(EllipticCurve(999))
	assert.ErrorIs(err, ErrUnknownCurve)
}

func Test_PrivateKey_Curve(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key, err := NewPrivateKey(curve)
		assert.NoError(err)
		assert.Equal(curve, key.Curve())
	}
}

func Test_PrivateKey_Bytes(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key := NewPrivateKeyFromSecret(curve, big.NewInt(42))
		b, err := key.Bytes()
		assert.NoError(err)
		assert.Equal(32, len(b))
		// Left-padded: the value occupies the last byte only.
		assert.EqualValues(42, b[31])
		for i := 0; i < 31; i++ {
			assert.EqualValues(0, b[i])
		}
	}
}

func Test_PrivateKey_Mnemonic(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key := NewPrivateKeyFromSecret(curve, big.NewInt(123456))
		mnemonic, err := key.Mnemonic()
		assert.NoError(err)

		key1, err := NewPrivateKeyFromMnemonic(curve, mnemonic)
		assert.NoError(err)

		assert.True(key.Equal(key1))
	}

	// Try bad mnemonic.
	_, err := NewPrivateKeyFromMnemonic(SECP256K1, "foo bar baz")
	assert.Error(err)
}

func Test_PrivateKey_Equal(t *testing.T) {
	assert := assert.New(t)

	key1 := NewPrivateKeyFromSecret(SECP256K1, big.NewInt(5001))
	key2 := NewPrivateKeyFromSecret(SECP256K1, big.NewInt(5001))
	key3 := NewPrivateKeyFromSecret(SECP256K1, big.NewInt(5002))

	assert.True(key1.Equal(key2))
	assert.False(key1.Equal(key3))
}

func Test_PrivateKey_ToECDSA(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		privateKey, err := NewPrivateKey(curve)
		assert.NoError(err)
		assert.NotNil(privateKey.ToECDSA())
	}
}
