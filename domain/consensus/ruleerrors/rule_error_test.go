package ruleerrors

import (
	"testing"

	"github.com/pkg/errors"
)

func TestRejectReasonThroughWrapping(t *testing.T) {
	outer := errors.Wrapf(ErrDuplicateTxInputs, "transaction contains duplicate input %d", 3)

	if !errors.Is(outer, ErrDuplicateTxInputs) {
		t.Fatal("TestRejectReasonThroughWrapping: outer should match ErrDuplicateTxInputs")
	}
	if errors.Is(outer, ErrDuplicateJoinSplitNullifiers) {
		t.Fatal("TestRejectReasonThroughWrapping: outer should not match ErrDuplicateJoinSplitNullifiers")
	}

	reason, ok := RejectReason(outer)
	if !ok {
		t.Fatal("TestRejectReasonThroughWrapping: outer should contain a RuleError")
	}
	if reason != "bad-txns-inputs-duplicate" {
		t.Fatalf("TestRejectReasonThroughWrapping: expected 'bad-txns-inputs-duplicate', found: '%s'", reason)
	}
}

func TestRejectReasonOfForeignError(t *testing.T) {
	reason, ok := RejectReason(errors.New("unexpected EOF"))
	if ok {
		t.Fatalf("TestRejectReasonOfForeignError: unexpectedly found reason '%s'", reason)
	}
	if _, ok := RejectReason(nil); ok {
		t.Fatal("TestRejectReasonOfForeignError: nil should not carry a reason")
	}
}

func TestRuleErrorMessages(t *testing.T) {
	expected := map[RuleError]string{
		ErrTxInputsEmpty:                 "bad-txns-vin-empty",
		ErrTxOutputsEmpty:                "bad-txns-vout-empty",
		ErrTxOversize:                    "bad-txns-oversize",
		ErrTxOutNegative:                 "bad-txns-vout-negative",
		ErrTxOutTooLarge:                 "bad-txns-vout-toolarge",
		ErrTxOutTotalTooLarge:            "bad-txns-txouttotal-toolarge",
		ErrValueBalanceNonZero:           "bad-txns-valuebalance-nonzero",
		ErrValueBalanceTooLarge:          "bad-txns-valuebalance-toolarge",
		ErrVPubOldNegative:               "bad-txns-vpub_old-negative",
		ErrVPubNewNegative:               "bad-txns-vpub_new-negative",
		ErrVPubOldTooLarge:               "bad-txns-vpub_old-toolarge",
		ErrVPubNewTooLarge:               "bad-txns-vpub_new-toolarge",
		ErrVPubsBothNonZero:              "bad-txns-vpubs-both-nonzero",
		ErrTxInTotalTooLarge:             "bad-txns-txintotal-toolarge",
		ErrDuplicateTxInputs:             "bad-txns-inputs-duplicate",
		ErrDuplicateJoinSplitNullifiers:  "bad-joinsplits-nullifiers-duplicate",
		ErrDuplicateSpendNullifiers:      "bad-spend-description-nullifiers-duplicate",
		ErrBadCoinbaseScriptLength:       "bad-cb-length",
		ErrCoinbaseWithSpendDescription:  "bad-cb-has-spend-description",
		ErrNullPreviousOutpoint:          "bad-txns-prevout-null",
		ErrSpendDescriptionNullifierNull: "bad-spend-description-nullifier-null",
	}
	if len(expected) != 21 {
		t.Fatalf("TestRuleErrorMessages: expected 21 distinct rule errors, got %d", len(expected))
	}
	for ruleErr, message := range expected {
		if ruleErr.Error() != message {
			t.Errorf("TestRuleErrorMessages: expected '%s', found: '%s'", message, ruleErr.Error())
		}
	}
}
