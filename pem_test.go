package eccpem

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Pem_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, size := range []int{0, 1, 31, 48, 64, 65, 200} {
		payload := make([]byte, size)
		_, err := rand.Read(payload)
		assert.NoError(err)

		text := RenderPem(&PemBlock{Label: "EC PRIVATE KEY", Payload: payload})
		block, err := ParsePem(text)
		assert.NoError(err)
		assert.Equal("EC PRIVATE KEY", block.Label)
		assert.True(bytes.Equal(payload, block.Payload))
	}
}

func Test_Pem_RenderFormat(t *testing.T) {
	assert := assert.New(t)

	payload := make([]byte, 120)
	text := RenderPem(&PemBlock{Label: "PUBLIC KEY", Payload: payload})

	assert.True(strings.HasPrefix(text, "-----BEGIN PUBLIC KEY-----\n"))
	assert.True(strings.HasSuffix(text, "-----END PUBLIC KEY-----\n"))

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for _, line := range lines[1 : len(lines)-1] {
		assert.True(len(line) <= pemLineLength)
	}
	// 120 bytes encode to 160 Base64 characters: two full lines and one
	// 32-character remainder.
	assert.Equal(5, len(lines))
	assert.Equal(pemLineLength, len(lines[1]))
	assert.Equal(pemLineLength, len(lines[2]))
	assert.Equal(32, len(lines[3]))
}

func Test_Pem_ParseExpect(t *testing.T) {
	assert := assert.New(t)

	text := RenderPem(&PemBlock{Label: "PUBLIC KEY", Payload: []byte{1, 2, 3}})

	payload, err := ParsePemExpect(text, "PUBLIC KEY")
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3}, payload)

	_, err = ParsePemExpect(text, "EC PRIVATE KEY")
	assert.ErrorIs(err, ErrLabelMismatch)
}

func Test_Pem_Malformed(t *testing.T) {
	assert := assert.New(t)

	// No markers at all.
	_, err := ParsePem("this is not a PEM file")
	assert.ErrorIs(err, ErrMalformedPem)

	// Missing END marker.
	_, err = ParsePem("-----BEGIN PUBLIC KEY-----\nAQID\n")
	assert.ErrorIs(err, ErrMalformedPem)

	// Mismatched BEGIN/END labels.
	_, err = ParsePem("-----BEGIN PUBLIC KEY-----\nAQID\n-----END EC PRIVATE KEY-----\n")
	assert.ErrorIs(err, ErrMalformedPem)

	// Interior is not valid Base64.
	_, err = ParsePem("-----BEGIN PUBLIC KEY-----\n!!!not base64!!!\n-----END PUBLIC KEY-----\n")
	assert.ErrorIs(err, ErrMalformedPem)
}

func Test_Pem_CarriageReturns(t *testing.T) {
	assert := assert.New(t)

	text := RenderPem(&PemBlock{Label: "PUBLIC KEY", Payload: []byte{1, 2, 3}})
	crlf := strings.ReplaceAll(text, "\n", "\r\n")
	block, err := ParsePem(crlf)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3}, block.Payload)
}
