package eccpem

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"math/big"
)

// DER structures matching what OpenSSL writes: RFC 5915 ECPrivateKey for
// private keys, PKCS#8 as an accepted alternative on read, and
// SubjectPublicKeyInfo for public keys.

var oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
var oidNamedCurvePrime256v1 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
var oidNamedCurveSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}

type ecPrivateKeyDER struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

type pkcs8DER struct {
	Version    int
	Algo       pkix.AlgorithmIdentifier
	PrivateKey []byte
}

type subjectPublicKeyInfoDER struct {
	Algo      pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

func curveToOID(curve EllipticCurve) (asn1.ObjectIdentifier, error) {
	switch curve {
	case SECP256K1:
		return oidNamedCurveSecp256k1, nil
	case PRIME256V1:
		return oidNamedCurvePrime256v1, nil
	}
	return nil, ErrUnknownCurve
}

func curveFromOID(oid asn1.ObjectIdentifier) (EllipticCurve, error) {
	if oid.Equal(oidNamedCurveSecp256k1) {
		return SECP256K1, nil
	}
	if oid.Equal(oidNamedCurvePrime256v1) {
		return PRIME256V1, nil
	}
	return INVALID_CURVE, fmt.Errorf("%w: OID %v", ErrUnknownCurve, oid)
}

// marshalPrivateKeyDER builds the RFC 5915 ECPrivateKey structure carrying
// the fixed-width scalar, the named curve OID and the compressed public
// point.
func marshalPrivateKeyDER(curve EllipticCurve, scalar []byte, compressed []byte) ([]byte, error) {
	oid, err := curveToOID(curve)
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(ecPrivateKeyDER{
		Version:       1,
		PrivateKey:    scalar,
		NamedCurveOID: oid,
		PublicKey:     asn1.BitString{Bytes: compressed, BitLength: len(compressed) * 8},
	})
}

// parsePrivateKeyDER extracts the curve and the private scalar from a DER
// payload, accepting either a bare RFC 5915 ECPrivateKey or a PKCS#8
// envelope around one.
func parsePrivateKeyDER(der []byte) (EllipticCurve, *big.Int, error) {
	var ecKey ecPrivateKeyDER
	if rest, err := asn1.Unmarshal(der, &ecKey); err == nil && len(rest) == 0 &&
		ecKey.NamedCurveOID != nil {
		curve, err := curveFromOID(ecKey.NamedCurveOID)
		if err != nil {
			return INVALID_CURVE, nil, err
		}
		return curve, new(big.Int).SetBytes(ecKey.PrivateKey), nil
	}

	var p8 pkcs8DER
	rest, err := asn1.Unmarshal(der, &p8)
	if err != nil || len(rest) != 0 {
		return INVALID_CURVE, nil, fmt.Errorf("%w: not an EC private key structure", ErrMalformedPem)
	}
	if !p8.Algo.Algorithm.Equal(oidPublicKeyECDSA) {
		return INVALID_CURVE, nil, fmt.Errorf("%w: not an EC key", ErrMalformedPem)
	}
	var oid asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(p8.Algo.Parameters.FullBytes, &oid); err != nil {
		return INVALID_CURVE, nil, fmt.Errorf("%w: missing named curve", ErrMalformedPem)
	}
	curve, err := curveFromOID(oid)
	if err != nil {
		return INVALID_CURVE, nil, err
	}
	var inner ecPrivateKeyDER
	if _, err := asn1.Unmarshal(p8.PrivateKey, &inner); err != nil {
		return INVALID_CURVE, nil, fmt.Errorf("%w: %v", ErrMalformedPem, err)
	}
	return curve, new(big.Int).SetBytes(inner.PrivateKey), nil
}

// marshalPublicKeyDER builds a SubjectPublicKeyInfo structure around the
// compressed point.
func marshalPublicKeyDER(curve EllipticCurve, compressed []byte) ([]byte, error) {
	oid, err := curveToOID(curve)
	if err != nil {
		return nil, err
	}
	oidBytes, err := asn1.Marshal(oid)
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(subjectPublicKeyInfoDER{
		Algo: pkix.AlgorithmIdentifier{
			Algorithm:  oidPublicKeyECDSA,
			Parameters: asn1.RawValue{FullBytes: oidBytes},
		},
		PublicKey: asn1.BitString{Bytes: compressed, BitLength: len(compressed) * 8},
	})
}

// parsePublicKeyDER extracts the curve and the raw point bytes (compressed
// or uncompressed, as stored) from a SubjectPublicKeyInfo payload.
func parsePublicKeyDER(der []byte) (EllipticCurve, []byte, error) {
	var spki subjectPublicKeyInfoDER
	rest, err := asn1.Unmarshal(der, &spki)
	if err != nil || len(rest) != 0 {
		return INVALID_CURVE, nil, fmt.Errorf("%w: not a SubjectPublicKeyInfo structure", ErrMalformedPem)
	}
	if !spki.Algo.Algorithm.Equal(oidPublicKeyECDSA) {
		return INVALID_CURVE, nil, fmt.Errorf("%w: not an EC key", ErrMalformedPem)
	}
	var oid asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(spki.Algo.Parameters.FullBytes, &oid); err != nil {
		return INVALID_CURVE, nil, fmt.Errorf("%w: missing named curve", ErrMalformedPem)
	}
	curve, err := curveFromOID(oid)
	if err != nil {
		return INVALID_CURVE, nil, err
	}
	return curve, spki.PublicKey.Bytes, nil
}
