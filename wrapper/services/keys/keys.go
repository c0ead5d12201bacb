/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keys

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	minUnicodeRuneValue   = 0 // U+0000
	compositeKeyNamespace = "\x00"
	MaxUnicodeRuneValue   = utf8.MaxRune // U+10FFFF - maximum (and unallocated) code point

	TokenObjectType     = "wtoken"
	SignatureObjectType = "wontology"
	ConfigObjectType    = "wconfig"

	OwnerMSPIDKey  = "ownerMspId"
	BridgeMSPIDKey = "bridgeMspId"
	BridgeIDKey    = "bridgeId"
)

// Translator builds the world state keys used by the wrapper
type Translator struct {
}

func (t *Translator) CreateTokenKey(tokenID string) (string, error) {
	if len(tokenID) == 0 {
		return "", errors.New("empty token id")
	}
	return CreateCompositeKey(TokenObjectType, []string{tokenID})
}

func (t *Translator) CreateSignatureKey(tokenID string, kind string) (string, error) {
	if len(tokenID) == 0 {
		return "", errors.New("empty token id")
	}
	return CreateCompositeKey(SignatureObjectType, []string{tokenID, kind})
}

func (t *Translator) CreateConfigKey(name string) (string, error) {
	return CreateCompositeKey(ConfigObjectType, []string{name})
}

// CreateCompositeKey follows the composite key layout of the fabric shim
// so that partial composite key queries on the peer find the entries.
func CreateCompositeKey(objectType string, attributes []string) (string, error) {
	if err := validateCompositeKeyAttribute(objectType); err != nil {
		return "", err
	}
	ck := compositeKeyNamespace + objectType + string(rune(minUnicodeRuneValue))
	for _, att := range attributes {
		if err := validateCompositeKeyAttribute(att); err != nil {
			return "", err
		}
		ck += att + string(rune(minUnicodeRuneValue))
	}
	return ck, nil
}

// SplitCompositeKey returns the object type and the attributes of a composite key
func SplitCompositeKey(compositeKey string) (string, []string, error) {
	if len(compositeKey) == 0 || compositeKey[:1] != compositeKeyNamespace {
		return "", nil, errors.Errorf("invalid composite key [%q]: missing namespace", compositeKey)
	}
	componentIndex := 1
	var components []string
	for i := 1; i < len(compositeKey); i++ {
		if compositeKey[i] == minUnicodeRuneValue {
			components = append(components, compositeKey[componentIndex:i])
			componentIndex = i + 1
		}
	}
	if len(components) < 1 {
		return "", nil, errors.Errorf("invalid composite key [%q]: no components found", compositeKey)
	}
	return components[0], components[1:], nil
}

func validateCompositeKeyAttribute(str string) error {
	if !utf8.ValidString(str) {
		return errors.Errorf("not a valid utf8 string: [%x]", str)
	}
	for index, runeValue := range str {
		if runeValue == minUnicodeRuneValue || runeValue == MaxUnicodeRuneValue {
			return errors.Errorf(`input contain unicode %#U starting at position [%d]. %#U and %#U are not allowed in the input attribute of a composite key`,
				runeValue, index, minUnicodeRuneValue, MaxUnicodeRuneValue)
		}
	}
	return nil
}
