package ruleerrors

import (
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError. The message of
// each one is the reject reason that is relayed to peers, so it must never
// change.
var (
	// ErrTxInputsEmpty indicates a transaction has no transparent inputs,
	// no join-splits and no Sapling spends.
	ErrTxInputsEmpty = newRuleError("bad-txns-vin-empty")

	// ErrTxOutputsEmpty indicates a transaction has no transparent outputs,
	// no join-splits and no Sapling outputs.
	ErrTxOutputsEmpty = newRuleError("bad-txns-vout-empty")

	// ErrTxOversize indicates the weight of a transaction exceeds the
	// maximum block weight.
	ErrTxOversize = newRuleError("bad-txns-oversize")

	// ErrTxOutNegative indicates a transparent output has a negative value.
	ErrTxOutNegative = newRuleError("bad-txns-vout-negative")

	// ErrTxOutTooLarge indicates a transparent output value exceeds the
	// maximum amount of money.
	ErrTxOutTooLarge = newRuleError("bad-txns-vout-toolarge")

	// ErrTxOutTotalTooLarge indicates the value leaving the transparent
	// pool is out of money range.
	ErrTxOutTotalTooLarge = newRuleError("bad-txns-txouttotal-toolarge")

	// ErrValueBalanceNonZero indicates a transaction without Sapling
	// descriptions has a non-zero value balance.
	ErrValueBalanceNonZero = newRuleError("bad-txns-valuebalance-nonzero")

	// ErrValueBalanceTooLarge indicates the magnitude of the value balance
	// exceeds the maximum amount of money.
	ErrValueBalanceTooLarge = newRuleError("bad-txns-valuebalance-toolarge")

	// ErrVPubOldNegative and ErrVPubNewNegative indicate a join-split moves
	// a negative value.
	ErrVPubOldNegative = newRuleError("bad-txns-vpub_old-negative")
	ErrVPubNewNegative = newRuleError("bad-txns-vpub_new-negative")

	// ErrVPubOldTooLarge and ErrVPubNewTooLarge indicate a join-split moves
	// more than the maximum amount of money.
	ErrVPubOldTooLarge = newRuleError("bad-txns-vpub_old-toolarge")
	ErrVPubNewTooLarge = newRuleError("bad-txns-vpub_new-toolarge")

	// ErrVPubsBothNonZero indicates a join-split moves value in both
	// directions at once.
	ErrVPubsBothNonZero = newRuleError("bad-txns-vpubs-both-nonzero")

	// ErrTxInTotalTooLarge indicates the value the shielded pools claim to
	// add to the transparent pool is out of money range.
	ErrTxInTotalTooLarge = newRuleError("bad-txns-txintotal-toolarge")

	// ErrDuplicateTxInputs indicates a transaction references the same
	// input more than once.
	ErrDuplicateTxInputs = newRuleError("bad-txns-inputs-duplicate")

	// ErrDuplicateJoinSplitNullifiers indicates a transaction reveals the
	// same Sprout nullifier more than once.
	ErrDuplicateJoinSplitNullifiers = newRuleError("bad-joinsplits-nullifiers-duplicate")

	// ErrDuplicateSpendNullifiers indicates a transaction reveals the same
	// Sapling nullifier more than once.
	ErrDuplicateSpendNullifiers = newRuleError("bad-spend-description-nullifiers-duplicate")

	// ErrBadCoinbaseScriptLength indicates the signature script of a
	// coinbase input is too short or too long.
	ErrBadCoinbaseScriptLength = newRuleError("bad-cb-length")

	// ErrCoinbaseWithSpendDescription indicates a coinbase transaction
	// spends Sapling notes.
	ErrCoinbaseWithSpendDescription = newRuleError("bad-cb-has-spend-description")

	// ErrNullPreviousOutpoint indicates a non-coinbase transaction input
	// refers to the null outpoint.
	ErrNullPreviousOutpoint = newRuleError("bad-txns-prevout-null")

	// ErrSpendDescriptionNullifierNull indicates a non-coinbase transaction
	// reveals a null Sapling nullifier.
	ErrSpendDescriptionNullifierNull = newRuleError("bad-spend-description-nullifier-null")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a transaction failed due to one of the many validation
// rules. The caller can use errors.Is or errors.As to determine if a failure
// was specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// RejectReason returns the machine-readable reason of the violated rule
func (e RuleError) RejectReason() string {
	return e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// RejectReason extracts the reject reason of the first RuleError found in
// err's chain. The second return value is false if there is none.
func RejectReason(err error) (string, bool) {
	var ruleErr RuleError
	if !errors.As(err, &ruleErr) {
		return "", false
	}
	return ruleErr.RejectReason(), true
}
