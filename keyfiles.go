package eccpem

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

var ErrInvalidExtension = fmt.Errorf("key file must have the .pem extension")
var ErrFileNotFound = fmt.Errorf("key file does not exist")
var ErrWriteFailure = fmt.Errorf("failed to write key file")

// PEM labels used by the key files.
const (
	LabelECPrivateKey        = "EC PRIVATE KEY"
	LabelPKCS8PrivateKey     = "PRIVATE KEY"
	LabelEncryptedPrivateKey = "ENCRYPTED EC PRIVATE KEY"
	LabelPublicKey           = "PUBLIC KEY"
)

// VerifyPemFileName checks that the file name carries the .pem extension.
// The check runs before any file is opened, so a bad path never touches
// the filesystem.
func VerifyPemFileName(fileName string) error {
	if filepath.Ext(fileName) != ".pem" {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, fileName)
	}
	return nil
}

// CreateKeyPairPemFiles generates a new key pair on the named curve and
// writes the private and public keys to the given PEM files. Existing
// files are overwritten. Both writes are atomic (temp file plus rename);
// if the public key write fails after the private key file was created,
// the private key file is removed so a failed call leaves nothing behind.
func CreateKeyPairPemFiles(curveName string, pubkeyFile string, privkeyFile string) error {
	params, err := LookupCurve(curveName)
	if err != nil {
		return err
	}
	if err := VerifyPemFileName(pubkeyFile); err != nil {
		return err
	}
	if err := VerifyPemFileName(privkeyFile); err != nil {
		return err
	}

	key, err := NewPrivateKey(params.Curve)
	if err != nil {
		return err
	}

	privPem, err := renderPrivateKeyPem(key, "")
	if err != nil {
		return err
	}
	pubPem, err := renderPublicKeyPem(key.PublicKey())
	if err != nil {
		return err
	}

	if err := writeFileAtomic(privkeyFile, []byte(privPem), 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := writeFileAtomic(pubkeyFile, []byte(pubPem), 0644); err != nil {
		os.Remove(privkeyFile)
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// ReadPrivateKeyPemFile reads a private key PEM file and returns the
// private scalar as exactly keySize big-endian bytes. keySize must equal
// the byte width of the curve the key was generated on (32 for the
// supported curves). Both RFC 5915 ("EC PRIVATE KEY") and PKCS#8
// ("PRIVATE KEY") files are accepted.
func ReadPrivateKeyPemFile(privkeyFile string, keySize int) ([]byte, error) {
	if err := VerifyPemFileName(privkeyFile); err != nil {
		return nil, err
	}
	if keySize <= 0 {
		return nil, fmt.Errorf("%w: key size must be positive", ErrLengthMismatch)
	}

	key, err := ReadPrivateKeyFromPemFile(privkeyFile, "")
	if err != nil {
		return nil, err
	}
	params := key.Curve().Params()
	if keySize != params.ByteWidth {
		return nil, fmt.Errorf("%w: got key size %d, curve %s requires %d",
			ErrLengthMismatch, keySize, params.Name, params.ByteWidth)
	}
	return EncodeScalar(key.Secret(), params)
}

// ReadPublicKeyPemFile reads a public key PEM file and returns the public
// point in SEC1 compressed form, exactly keySize bytes. keySize must
// equal the curve's compressed width (33 for the supported curves).
// Uncompressed points stored by other tools are accepted and compressed
// on the way out.
func ReadPublicKeyPemFile(pubkeyFile string, keySize int) ([]byte, error) {
	if err := VerifyPemFileName(pubkeyFile); err != nil {
		return nil, err
	}
	if keySize <= 0 {
		return nil, fmt.Errorf("%w: key size must be positive", ErrLengthMismatch)
	}

	key, err := ReadPublicKeyFromPemFile(pubkeyFile)
	if err != nil {
		return nil, err
	}
	params := key.Curve().Params()
	if keySize != params.CompressedWidth {
		return nil, fmt.Errorf("%w: got key size %d, curve %s requires %d",
			ErrLengthMismatch, keySize, params.Name, params.CompressedWidth)
	}
	return key.CompressedBytes()
}

// WritePemFile writes the private key to a PEM file. If
// passphrase is empty, the file contains the RFC 5915 structure under the
// "EC PRIVATE KEY" label. Otherwise the same structure is encrypted with
// AES-256-GCM under a key derived from the passphrase, and written under
// the "ENCRYPTED EC PRIVATE KEY" label.
func (pk *PrivateKey) WritePemFile(fileName string, passphrase string) error {
	if err := VerifyPemFileName(fileName); err != nil {
		return err
	}
	text, err := renderPrivateKeyPem(pk, passphrase)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(fileName, []byte(text), 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// WritePemFile writes the public key to a PEM file under the
// "PUBLIC KEY" label, with the point stored in compressed form.
func (pbk *PublicKey) WritePemFile(fileName string) error {
	if err := VerifyPemFileName(fileName); err != nil {
		return err
	}
	text, err := renderPublicKeyPem(pbk)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(fileName, []byte(text), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// ReadPrivateKeyFromPemFile loads a private key from a PEM file. The
// passphrase must match the one the file was written with, or be empty
// for an unencrypted file.
func ReadPrivateKeyFromPemFile(fileName string, passphrase string) (*PrivateKey, error) {
	if err := VerifyPemFileName(fileName); err != nil {
		return nil, err
	}
	data, err := readKeyFile(fileName)
	if err != nil {
		return nil, err
	}
	block, err := ParsePem(string(data))
	if err != nil {
		return nil, err
	}

	payload := block.Payload
	switch block.Label {
	case LabelECPrivateKey, LabelPKCS8PrivateKey:
	case LabelEncryptedPrivateKey:
		if passphrase == "" {
			return nil, fmt.Errorf("%w: key file is encrypted", ErrLabelMismatch)
		}
		payload, err = openWithPassphrase(passphrase, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPem, err)
		}
	default:
		return nil, fmt.Errorf("%w: got %q, want a private key label",
			ErrLabelMismatch, block.Label)
	}

	curve, d, err := parsePrivateKeyDER(payload)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromSecret(curve, d), nil
}

// ReadPublicKeyFromPemFile loads a public key from a PEM file. The stored
// point may be compressed or uncompressed; either way it is validated
// against the curve equation.
func ReadPublicKeyFromPemFile(fileName string) (*PublicKey, error) {
	if err := VerifyPemFileName(fileName); err != nil {
		return nil, err
	}
	data, err := readKeyFile(fileName)
	if err != nil {
		return nil, err
	}
	payload, err := ParsePemExpect(string(data), LabelPublicKey)
	if err != nil {
		return nil, err
	}
	curve, pointBytes, err := parsePublicKeyDER(payload)
	if err != nil {
		return nil, err
	}
	params := curve.Params()

	if len(pointBytes) > 0 && pointBytes[0] == 0x04 {
		return decodeUncompressedPoint(curve, pointBytes)
	}
	x, y, err := DecodePoint(pointBytes, params)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromPoint(curve, x, y), nil
}

// decodeUncompressedPoint handles the 0x04-prefixed form, 1 + 2w bytes.
func decodeUncompressedPoint(curve EllipticCurve, b []byte) (*PublicKey, error) {
	params := curve.Params()
	if len(b) != 1+2*params.ByteWidth {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrLengthMismatch,
			len(b), 1+2*params.ByteWidth)
	}
	x := new(big.Int).SetBytes(b[1 : 1+params.ByteWidth])
	y := new(big.Int).SetBytes(b[1+params.ByteWidth:])
	if !onCurve(x, y, params) {
		return nil, ErrPointNotOnCurve
	}
	return NewPublicKeyFromPoint(curve, x, y), nil
}

func renderPrivateKeyPem(key *PrivateKey, passphrase string) (string, error) {
	params := key.Curve().Params()
	scalar, err := EncodeScalar(key.Secret(), params)
	if err != nil {
		return "", err
	}
	compressed, err := key.PublicKey().CompressedBytes()
	if err != nil {
		return "", err
	}
	der, err := marshalPrivateKeyDER(key.Curve(), scalar, compressed)
	if err != nil {
		return "", err
	}

	label := LabelECPrivateKey
	payload := der
	if passphrase != "" {
		label = LabelEncryptedPrivateKey
		payload, err = sealWithPassphrase(passphrase, der)
		if err != nil {
			return "", err
		}
	}
	return RenderPem(&PemBlock{Label: label, Payload: payload}), nil
}

func renderPublicKeyPem(key *PublicKey) (string, error) {
	compressed, err := key.CompressedBytes()
	if err != nil {
		return "", err
	}
	der, err := marshalPublicKeyDER(key.Curve(), compressed)
	if err != nil {
		return "", err
	}
	return RenderPem(&PemBlock{Label: LabelPublicKey, Payload: der}), nil
}

func readKeyFile(fileName string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, fileName)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it over fileName, so a failed write never leaves a
// truncated key file behind.
func writeFileAtomic(fileName string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(fileName)
	tmp, err := os.CreateTemp(dir, filepath.Base(fileName)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fileName); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
