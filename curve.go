package eccpem

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec"
)

var ErrUnknownCurve = fmt.Errorf("unknown elliptic curve")
var ErrUnsupportedCurve = fmt.Errorf("the operation is not supported on this curve")

type EllipticCurve int

const (
	INVALID_CURVE EllipticCurve = -1
	SECP256K1     EllipticCurve = 1
	PRIME256V1    EllipticCurve = 2
)

// String returns the elliptic curve name as a string.
func (ec EllipticCurve) String() string {
	switch ec {
	case SECP256K1:
		return "secp256k1"
	case PRIME256V1:
		return "prime256v1"
	}
	return "Invalid"
}

// StringToEllipticCurve converts the elliptic curve name to EllipticCurve.
// If the name is not recognized, INVALID_CURVE is returned.
func StringToEllipticCurve(s string) EllipticCurve {
	switch strings.ToUpper(s) {
	case "SECP256K1":
		return SECP256K1
	case "PRIME256V1", "P-256", "P256":
		return PRIME256V1
	}

	return INVALID_CURVE
}

// getCurve returns elliptic.Curve interface for the given curve.
// If the curve is invalid, the function returns nil.
func getCurve(curve EllipticCurve) elliptic.Curve {
	switch curve {
	case SECP256K1:
		return btcec.S256()
	case PRIME256V1:
		return elliptic.P256()
	}
	return nil
}

// CurveParameters holds the constants defining a supported curve,
// y² = x³ + ax + b over the prime field of P. ByteWidth is the size of
// a serialized field element, CompressedWidth the size of a compressed
// point (one prefix byte plus the x coordinate).
type CurveParameters struct {
	Curve           EllipticCurve
	Name            string
	P               *big.Int
	A               *big.Int
	B               *big.Int
	N               *big.Int
	ByteWidth       int
	CompressedWidth int
}

var curveTable map[EllipticCurve]*CurveParameters

func init() {
	s256 := btcec.S256().CurveParams
	p256 := elliptic.P256().Params()
	curveTable = map[EllipticCurve]*CurveParameters{
		SECP256K1: {
			Curve:           SECP256K1,
			Name:            "secp256k1",
			P:               s256.P,
			A:               big.NewInt(0),
			B:               s256.B,
			N:               s256.N,
			ByteWidth:       32,
			CompressedWidth: 33,
		},
		PRIME256V1: {
			Curve:           PRIME256V1,
			Name:            "prime256v1",
			P:               p256.P,
			A:               new(big.Int).Sub(p256.P, big.NewInt(3)),
			B:               p256.B,
			N:               p256.N,
			ByteWidth:       32,
			CompressedWidth: 33,
		},
	}
}

// Params returns the curve parameters, or nil if the curve is invalid.
func (ec EllipticCurve) Params() *CurveParameters {
	return curveTable[ec]
}

// LookupCurve finds curve parameters by name, for example "secp256k1"
// or "prime256v1". ErrUnknownCurve is returned if the name does not
// resolve to a supported curve.
func LookupCurve(name string) (*CurveParameters, error) {
	curve := StringToEllipticCurve(name)
	if curve == INVALID_CURVE {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return curveTable[curve], nil
}
