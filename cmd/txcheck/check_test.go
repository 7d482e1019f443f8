package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/processes/transactionvalidator"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
	"github.com/MarkLTZ/bitcoin/domain/dagconfig"
)

func transactionForTest(inputs int) *externalapi.DomainTransaction {
	txInputs := make([]*externalapi.DomainTransactionInput, inputs)
	for i := range txInputs {
		txInputs[i] = &externalapi.DomainTransactionInput{
			PreviousOutpoint: externalapi.DomainOutpoint{TransactionID: externalapi.DomainTransactionID{1}, Index: 0},
			SignatureScript:  []byte{0x51},
		}
	}
	return transactionhelper.NewNativeTransaction(txInputs,
		[]*externalapi.DomainTransactionOutput{{Value: 1, ScriptPublicKey: []byte{0x51}}})
}

func hexForTest(t *testing.T, tx *externalapi.DomainTransaction) string {
	serialized, err := serialization.SerializeTransactionToBytes(tx)
	if err != nil {
		t.Fatalf("SerializeTransactionToBytes: %s", err)
	}
	return hex.EncodeToString(serialized)
}

func TestCheckTransactions(t *testing.T) {
	valid := transactionForTest(1)
	duplicateInputs := transactionForTest(2)
	validID := consensushashing.TransactionID(valid)
	duplicateID := consensushashing.TransactionID(duplicateInputs)

	input := strings.Join([]string{
		"# a comment",
		hexForTest(t, valid),
		"",
		hexForTest(t, duplicateInputs),
		"zz",
		"00",
	}, "\n")

	for _, workers := range []int{1, 4} {
		var output bytes.Buffer
		validator := transactionvalidator.New(&dagconfig.MainnetParams)
		failures, err := checkTransactions(strings.NewReader(input), &output, validator, workers)
		if err != nil {
			t.Fatalf("TestCheckTransactions: checkTransactions: %s", err)
		}
		if failures != 3 {
			t.Errorf("TestCheckTransactions: %d workers: expected 3 failures, got %d", workers, failures)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("TestCheckTransactions: %d workers: expected 4 verdicts, got %d: %q", workers, len(lines), lines)
		}
		expectedPrefixes := []string{
			fmt.Sprintf("%s valid", validID),
			fmt.Sprintf("%s invalid bad-txns-inputs-duplicate", duplicateID),
			"line 5 undecodable bad hex",
			"line 6 undecodable",
		}
		for i, expected := range expectedPrefixes {
			if !strings.HasPrefix(lines[i], expected) {
				t.Errorf("TestCheckTransactions: %d workers: verdict %d: expected prefix %q, got %q",
					workers, i, expected, lines[i])
			}
		}
	}
}

func TestCheckTransactionsEmptyInput(t *testing.T) {
	var output bytes.Buffer
	validator := transactionvalidator.New(&dagconfig.RegtestParams)
	failures, err := checkTransactions(strings.NewReader("\n# nothing here\n"), &output, validator, 2)
	if err != nil {
		t.Fatalf("TestCheckTransactionsEmptyInput: checkTransactions: %s", err)
	}
	if failures != 0 || output.Len() != 0 {
		t.Errorf("TestCheckTransactionsEmptyInput: expected no verdicts, got %d failures and %q",
			failures, output.String())
	}
}
