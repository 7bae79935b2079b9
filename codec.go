package eccpem

import (
	"fmt"
	"math/big"
)

var ErrScalarTooLarge = fmt.Errorf("scalar does not fit the curve's byte width")
var ErrLengthMismatch = fmt.Errorf("buffer length does not match the curve's byte width")
var ErrPointAtInfinity = fmt.Errorf("the point at infinity cannot be encoded")
var ErrPointNotOnCurve = fmt.Errorf("the point is not on the curve")
var ErrInvalidPrefix = fmt.Errorf("invalid compressed point prefix")

// EncodeScalar serializes a private scalar as exactly params.ByteWidth
// big-endian bytes, zero-padded on the left.
func EncodeScalar(d *big.Int, params *CurveParameters) ([]byte, error) {
	b := d.Bytes()
	if len(b) > params.ByteWidth {
		return nil, ErrScalarTooLarge
	}
	return padWithZeros(b, params.ByteWidth), nil
}

// DecodeScalar is the inverse of EncodeScalar. The input must be exactly
// params.ByteWidth bytes long.
func DecodeScalar(b []byte, params *CurveParameters) (*big.Int, error) {
	if len(b) != params.ByteWidth {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLengthMismatch,
			len(b), params.ByteWidth)
	}
	return new(big.Int).SetBytes(b), nil
}

// EncodePoint serializes a curve point in SEC1 compressed form: a prefix
// byte (0x02 for even y, 0x03 for odd y) followed by x as
// params.ByteWidth big-endian bytes.
func EncodePoint(x, y *big.Int, params *CurveParameters) ([]byte, error) {
	if x == nil || y == nil || (x.Sign() == 0 && y.Sign() == 0) {
		return nil, ErrPointAtInfinity
	}
	xb := x.Bytes()
	if len(xb) > params.ByteWidth {
		return nil, ErrScalarTooLarge
	}
	out := make([]byte, params.CompressedWidth)
	out[0] = 0x02
	if y.Bit(0) == 1 {
		out[0] = 0x03
	}
	copy(out[1+params.ByteWidth-len(xb):], xb)
	return out, nil
}

// DecodePoint recovers the (x, y) coordinates from a SEC1 compressed
// point. The y coordinate is found by solving y² = x³ + ax + b mod p;
// since p ≡ 3 (mod 4) for the supported curves, the square root is
// beta = alpha^((p+1)/4) mod p. Of the two roots beta and p-beta, the
// one whose parity matches the prefix byte is selected.
func DecodePoint(b []byte, params *CurveParameters) (*big.Int, *big.Int, error) {
	if len(b) != params.CompressedWidth {
		return nil, nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLengthMismatch,
			len(b), params.CompressedWidth)
	}

	odd := false
	if b[0] == 0x03 {
		odd = true
	} else if b[0] != 0x02 {
		return nil, nil, fmt.Errorf("%w: 0x%02x", ErrInvalidPrefix, b[0])
	}

	x := new(big.Int).SetBytes(b[1:])
	if x.Cmp(params.P) >= 0 {
		return nil, nil, ErrPointNotOnCurve
	}

	// alpha = x³ + ax + b mod p
	alpha := new(big.Int).Exp(x, big.NewInt(3), params.P)
	alpha.Add(alpha, new(big.Int).Mul(params.A, x))
	alpha.Add(alpha, params.B)
	alpha.Mod(alpha, params.P)

	sqrtExp := new(big.Int).Add(params.P, big.NewInt(1))
	sqrtExp.Div(sqrtExp, big.NewInt(4))
	beta := new(big.Int).Exp(alpha, sqrtExp, params.P)

	// If alpha has no square root mod p, x is not on the curve.
	check := new(big.Int).Mul(beta, beta)
	check.Mod(check, params.P)
	if check.Cmp(alpha) != 0 {
		return nil, nil, ErrPointNotOnCurve
	}

	y := beta
	if (y.Bit(0) == 1) != odd {
		y = new(big.Int).Sub(params.P, beta)
	}
	return x, y, nil
}

// onCurve reports whether (x, y) satisfies the curve equation.
func onCurve(x, y *big.Int, params *CurveParameters) bool {
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, params.P)
	rhs := new(big.Int).Exp(x, big.NewInt(3), params.P)
	rhs.Add(rhs, new(big.Int).Mul(params.A, x))
	rhs.Add(rhs, params.B)
	rhs.Mod(rhs, params.P)
	return lhs.Cmp(rhs) == 0
}
