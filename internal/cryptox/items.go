package cryptox

import (
	"errors"

	"github.com/glopmts/my-accounts-sub000/internal/common"
)

// FieldKind identifies which decryptable field of a SecretItem an operation
// refers to. A closed enum keeps field access type-safe instead of indexing
// by dynamic field names.
type FieldKind int

const (
	FieldValue FieldKind = iota
	FieldHint
	FieldNotes
)

// DecryptableFields lists every field kind in a stable order.
var DecryptableFields = []FieldKind{FieldValue, FieldHint, FieldNotes}

func (k FieldKind) String() string {
	switch k {
	case FieldValue:
		return "value"
	case FieldHint:
		return "hint"
	case FieldNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// SecretItem is one labeled password entry: the secret value plus its
// optional hint and notes. The three payload fields are stored encrypted;
// Label stays in the clear for listing.
type SecretItem struct {
	Label string
	Value string
	Hint  string
	Notes string
}

// field maps a kind to the item's field. The mapping is the single place
// that knows which fields are decryptable.
func (i *SecretItem) field(kind FieldKind) *string {
	switch kind {
	case FieldValue:
		return &i.Value
	case FieldHint:
		return &i.Hint
	case FieldNotes:
		return &i.Notes
	default:
		return nil
	}
}

// ItemResult is the outcome of decrypting one item. Fields that failed
// authentication are emptied and recorded in Failed; callers render a
// placeholder for those instead of ciphertext.
type ItemResult struct {
	Item   SecretItem
	Failed []FieldKind
}

// EncryptItems encrypts every payload field of every item with the same
// key. Empty fields pass through untouched. A key-shape error aborts the
// whole batch since it is a configuration defect, not a data problem.
func EncryptItems(items []SecretItem, key []byte) ([]SecretItem, error) {
	out := make([]SecretItem, len(items))
	for n, item := range items {
		enc := item
		for _, kind := range DecryptableFields {
			src := item.field(kind)
			sealed, err := EncryptText(*src, key)
			if err != nil {
				return nil, err
			}
			*enc.field(kind) = sealed
		}
		out[n] = enc
	}
	return out, nil
}

// DecryptItems decrypts every payload field of every item. One field's
// failure never aborts the batch: the field is marked in the item's result
// and the remaining fields and items proceed. Only key-shape errors abort.
func DecryptItems(items []SecretItem, key []byte) ([]ItemResult, error) {
	out := make([]ItemResult, len(items))
	for n, item := range items {
		res := ItemResult{Item: item}
		for _, kind := range DecryptableFields {
			plain, err := DecryptText(*item.field(kind), key)
			if err != nil {
				if errors.Is(err, common.ErrDecryptionFailed) {
					*res.Item.field(kind) = ""
					res.Failed = append(res.Failed, kind)
					continue
				}
				return nil, err
			}
			*res.Item.field(kind) = plain
		}
		out[n] = res
	}
	return out, nil
}
