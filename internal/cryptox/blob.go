package cryptox

import (
	"encoding/hex"
	"encoding/json"
)

// Algorithm identifier recorded in every blob. Kept in the serialized form
// so the cipher can be rotated later without breaking stored data.
const AlgorithmAESGCM = "aes-256-gcm"

const (
	// KeySize is the required symmetric key length (AES-256).
	KeySize = 32
	// IVSize is the initialization vector length used with AES-GCM here.
	IVSize = 16
	// TagSize is the GCM authentication tag length.
	TagSize = 16
)

// EncryptedBlob is the self-describing at-rest representation of an
// encrypted field. All byte fields are hex-encoded. Decryption requires no
// external context beyond the symmetric key.
type EncryptedBlob struct {
	IV        string `json:"iv"`
	Encrypted string `json:"encrypted"`
	AuthTag   string `json:"authTag"`
	Algorithm string `json:"algorithm"`
}

// Serialize packs the blob into its opaque storage string.
func (b *EncryptedBlob) Serialize() (string, error) {
	out, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseBlob attempts to interpret text as a serialized EncryptedBlob.
// The boolean result reports whether the text has the blob shape; it is
// false for legacy plaintext values stored before encryption existed.
func ParseBlob(text string) (*EncryptedBlob, bool) {
	if len(text) == 0 || text[0] != '{' {
		return nil, false
	}
	var b EncryptedBlob
	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return nil, false
	}
	if b.IV == "" || b.Encrypted == "" || b.AuthTag == "" || b.Algorithm == "" {
		return nil, false
	}
	return &b, true
}

// IsEncryptedFormat is a structural sniff test: it reports whether text
// parses as a serialized blob with all required sub-fields present. It
// never fails; unparseable input simply yields false.
func IsEncryptedFormat(text string) bool {
	_, ok := ParseBlob(text)
	return ok
}

// decode returns the raw iv, ciphertext and tag bytes of the blob.
func (b *EncryptedBlob) decode() (iv, ciphertext, tag []byte, err error) {
	if iv, err = hex.DecodeString(b.IV); err != nil {
		return nil, nil, nil, err
	}
	if ciphertext, err = hex.DecodeString(b.Encrypted); err != nil {
		return nil, nil, nil, err
	}
	if tag, err = hex.DecodeString(b.AuthTag); err != nil {
		return nil, nil, nil, err
	}
	return iv, ciphertext, tag, nil
}
