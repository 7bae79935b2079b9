package eccpem

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var ErrMalformedPem = fmt.Errorf("malformed PEM data")
var ErrLabelMismatch = fmt.Errorf("unexpected PEM label")

const pemLineLength = 64

// PemBlock is a labeled binary payload, the in-memory form of one PEM
// -----BEGIN ...----- / -----END ...----- section.
type PemBlock struct {
	Label   string
	Payload []byte
}

// RenderPem converts the block to PEM text: the payload is Base64-encoded
// (standard alphabet, '=' padding), split into 64-character lines and
// surrounded by BEGIN/END marker lines carrying the label.
func RenderPem(block *PemBlock) string {
	var sb strings.Builder
	sb.WriteString("-----BEGIN ")
	sb.WriteString(block.Label)
	sb.WriteString("-----\n")
	encoded := base64.StdEncoding.EncodeToString(block.Payload)
	for len(encoded) > pemLineLength {
		sb.WriteString(encoded[:pemLineLength])
		sb.WriteString("\n")
		encoded = encoded[pemLineLength:]
	}
	if len(encoded) > 0 {
		sb.WriteString(encoded)
		sb.WriteString("\n")
	}
	sb.WriteString("-----END ")
	sb.WriteString(block.Label)
	sb.WriteString("-----\n")
	return sb.String()
}

// ParsePem extracts the first PEM block from text. It fails with
// ErrMalformedPem if the BEGIN or END marker is missing, the two labels
// disagree, or the interior is not valid Base64.
func ParsePem(text string) (*PemBlock, error) {
	lines := strings.Split(text, "\n")

	label := ""
	begin := -1
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-----BEGIN ") && strings.HasSuffix(line, "-----") {
			label = strings.TrimSuffix(strings.TrimPrefix(line, "-----BEGIN "), "-----")
			begin = i
			break
		}
	}
	if begin == -1 {
		return nil, fmt.Errorf("%w: no BEGIN marker", ErrMalformedPem)
	}

	end := -1
	for i := begin + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "-----END ") && strings.HasSuffix(line, "-----") {
			endLabel := strings.TrimSuffix(strings.TrimPrefix(line, "-----END "), "-----")
			if endLabel != label {
				return nil, fmt.Errorf("%w: BEGIN %q closed by END %q", ErrMalformedPem,
					label, endLabel)
			}
			end = i
			break
		}
	}
	if end == -1 {
		return nil, fmt.Errorf("%w: no END marker", ErrMalformedPem)
	}

	var body strings.Builder
	for i := begin + 1; i < end; i++ {
		body.WriteString(strings.TrimSpace(lines[i]))
	}
	payload, err := base64.StdEncoding.DecodeString(body.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPem, err)
	}
	return &PemBlock{Label: label, Payload: payload}, nil
}

// ParsePemExpect parses a PEM block and verifies its label, returning the
// payload. ErrLabelMismatch is returned if the label differs.
func ParsePemExpect(text string, label string) ([]byte, error) {
	block, err := ParsePem(text)
	if err != nil {
		return nil, err
	}
	if block.Label != label {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrLabelMismatch, block.Label, label)
	}
	return block.Payload, nil
}
