package transactionhelper

import (
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
)

func TestIsCoinBase(t *testing.T) {
	nullInput := &externalapi.DomainTransactionInput{PreviousOutpoint: externalapi.NewNullOutpoint()}
	regularInput := &externalapi.DomainTransactionInput{PreviousOutpoint: externalapi.DomainOutpoint{Index: 0}}

	tests := []struct {
		name     string
		inputs   []*externalapi.DomainTransactionInput
		expected bool
	}{
		{"no inputs", nil, false},
		{"single null input", []*externalapi.DomainTransactionInput{nullInput}, true},
		{"single regular input", []*externalapi.DomainTransactionInput{regularInput}, false},
		{"null input followed by another", []*externalapi.DomainTransactionInput{nullInput, regularInput}, false},
	}

	for _, test := range tests {
		tx := NewNativeTransaction(test.inputs, nil)
		if IsCoinBase(tx) != test.expected {
			t.Errorf("TestIsCoinBase: %s: expected %t", test.name, test.expected)
		}
	}

	if !IsCoinBase(NewCoinbaseTransaction([]byte{1, 2})) {
		t.Errorf("TestIsCoinBase: NewCoinbaseTransaction did not build a coinbase")
	}
}
