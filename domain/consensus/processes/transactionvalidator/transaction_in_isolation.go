package transactionvalidator

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/ruleerrors"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/amount"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
	"github.com/pkg/errors"
)

// valueAccounting holds the running totals of a single validation. totalOut
// is the value leaving the transparent pool, totalIn is the value the
// shielded pools claim to add to it. Both stay in money range.
type valueAccounting struct {
	totalOut amount.Amount
	totalIn  amount.Amount
}

type isolationCheck func(tx *externalapi.DomainTransaction, accounting *valueAccounting) error

// ValidateTransactionInIsolation validates the parts of a transaction that
// do not depend on any context. The checks run in a fixed order and the
// first one that fails decides the returned error.
func (v *transactionValidator) ValidateTransactionInIsolation(tx *externalapi.DomainTransaction) error {
	checks := []isolationCheck{
		checkTransactionInputsNotEmpty,
		checkTransactionOutputsNotEmpty,
		v.checkTransactionSize,
		checkTransparentOutputAmounts,
		checkValueBalance,
		checkJoinSplitAmounts,
		checkInputValueTotals,
		checkDuplicateTransactionInputs,
		checkDuplicateJoinSplitNullifiers,
		checkDuplicateSpendNullifiers,
		checkCoinbaseOrPrevouts,
	}

	accounting := &valueAccounting{}
	for _, check := range checks {
		err := check(tx, accounting)
		if err != nil {
			return err
		}
	}
	return nil
}

func checkTransactionInputsNotEmpty(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	if len(tx.Inputs) == 0 && len(tx.JoinSplits) == 0 && len(tx.ShieldedSpends) == 0 {
		return errors.Wrapf(ruleerrors.ErrTxInputsEmpty, "transaction has no inputs, join-splits or spend descriptions")
	}
	return nil
}

func checkTransactionOutputsNotEmpty(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	if len(tx.Outputs) == 0 && len(tx.JoinSplits) == 0 && len(tx.ShieldedOutputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrTxOutputsEmpty, "transaction has no outputs, join-splits or output descriptions")
	}
	return nil
}

// checkTransactionSize rejects transactions that could not fit in a block
// on their own. The serialized form carries no segregated witness, so its
// whole length is weighed.
func (v *transactionValidator) checkTransactionSize(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	size := serialization.TransactionSerializeSize(tx)
	if size*v.witnessScaleFactor > v.maxBlockWeight {
		return errors.Wrapf(ruleerrors.ErrTxOversize, "transaction of %d bytes weighs %d which is more than "+
			"the max allowed weight of %d", size, size*v.witnessScaleFactor, v.maxBlockWeight)
	}
	return nil
}

// checkTransparentOutputAmounts ensures every output value is in money range
// before it's added to the total, so the running sum can't wrap around.
func checkTransparentOutputAmounts(tx *externalapi.DomainTransaction, accounting *valueAccounting) error {
	for i, output := range tx.Outputs {
		if output.Value < 0 {
			return errors.Wrapf(ruleerrors.ErrTxOutNegative, "transaction output %d has negative value of %d",
				i, output.Value)
		}
		if output.Value > amount.MaxMoney {
			return errors.Wrapf(ruleerrors.ErrTxOutTooLarge, "transaction output %d has value of %d which is "+
				"higher than max allowed value of %d", i, output.Value, amount.MaxMoney)
		}

		var ok bool
		accounting.totalOut, ok = accounting.totalOut.Add(output.Value)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrTxOutTotalTooLarge, "total value of all transaction outputs "+
				"exceeds max allowed value of %d", amount.MaxMoney)
		}
	}
	return nil
}

// checkValueBalance bounds the Sapling value balance. A negative balance
// takes value from the transparent pool the same way outputs do, so it is
// accounted here. A positive one is accounted with the inputs.
func checkValueBalance(tx *externalapi.DomainTransaction, accounting *valueAccounting) error {
	if len(tx.ShieldedSpends) == 0 && len(tx.ShieldedOutputs) == 0 && tx.ValueBalance != 0 {
		return errors.Wrapf(ruleerrors.ErrValueBalanceNonZero, "transaction without spend or output "+
			"descriptions has a value balance of %d", tx.ValueBalance)
	}
	if !tx.ValueBalance.InMagnitudeRange() {
		return errors.Wrapf(ruleerrors.ErrValueBalanceTooLarge, "value balance of %d is out of the "+
			"allowed range of +-%d", tx.ValueBalance, amount.MaxMoney)
	}

	if tx.ValueBalance <= 0 {
		// Cannot overflow: the magnitude was checked above.
		taken, _ := tx.ValueBalance.Negate()
		var ok bool
		accounting.totalOut, ok = accounting.totalOut.Add(taken)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrTxOutTotalTooLarge, "total value of transaction outputs and "+
				"value balance exceeds max allowed value of %d", amount.MaxMoney)
		}
	}
	return nil
}

func checkJoinSplitAmounts(tx *externalapi.DomainTransaction, accounting *valueAccounting) error {
	for i, joinSplit := range tx.JoinSplits {
		if joinSplit.VPubOld < 0 {
			return errors.Wrapf(ruleerrors.ErrVPubOldNegative, "join-split %d has negative vpub_old of %d",
				i, joinSplit.VPubOld)
		}
		if joinSplit.VPubNew < 0 {
			return errors.Wrapf(ruleerrors.ErrVPubNewNegative, "join-split %d has negative vpub_new of %d",
				i, joinSplit.VPubNew)
		}
		if joinSplit.VPubOld > amount.MaxMoney {
			return errors.Wrapf(ruleerrors.ErrVPubOldTooLarge, "join-split %d has vpub_old of %d which is "+
				"higher than max allowed value of %d", i, joinSplit.VPubOld, amount.MaxMoney)
		}
		if joinSplit.VPubNew > amount.MaxMoney {
			return errors.Wrapf(ruleerrors.ErrVPubNewTooLarge, "join-split %d has vpub_new of %d which is "+
				"higher than max allowed value of %d", i, joinSplit.VPubNew, amount.MaxMoney)
		}
		if joinSplit.VPubOld != 0 && joinSplit.VPubNew != 0 {
			return errors.Wrapf(ruleerrors.ErrVPubsBothNonZero, "join-split %d moves value in both "+
				"directions", i)
		}

		var ok bool
		accounting.totalOut, ok = accounting.totalOut.Add(joinSplit.VPubOld)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrTxOutTotalTooLarge, "total value leaving the transparent pool "+
				"exceeds max allowed value of %d", amount.MaxMoney)
		}
	}
	return nil
}

// checkInputValueTotals bounds the value the shielded pools claim to add to
// the transparent pool. The values of transparent inputs are not known
// without the UTXO set and are not part of the total.
func checkInputValueTotals(tx *externalapi.DomainTransaction, accounting *valueAccounting) error {
	for i, joinSplit := range tx.JoinSplits {
		var ok bool
		accounting.totalIn, ok = accounting.totalIn.Add(joinSplit.VPubNew)
		if !amount.MoneyRange(joinSplit.VPubNew) || !ok {
			return errors.Wrapf(ruleerrors.ErrTxInTotalTooLarge, "total value entering the transparent "+
				"pool at join-split %d exceeds max allowed value of %d", i, amount.MaxMoney)
		}
	}

	if tx.ValueBalance > 0 {
		var ok bool
		accounting.totalIn, ok = accounting.totalIn.Add(tx.ValueBalance)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrTxInTotalTooLarge, "total value entering the transparent "+
				"pool with value balance %d exceeds max allowed value of %d", tx.ValueBalance, amount.MaxMoney)
		}
	}
	return nil
}

func checkDuplicateTransactionInputs(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	existingTxOut := make(map[externalapi.DomainOutpoint]struct{}, len(tx.Inputs))
	for _, input := range tx.Inputs {
		if _, exists := existingTxOut[input.PreviousOutpoint]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateTxInputs, "transaction "+
				"contains duplicate inputs of outpoint %s", input.PreviousOutpoint)
		}
		existingTxOut[input.PreviousOutpoint] = struct{}{}
	}
	return nil
}

func checkDuplicateJoinSplitNullifiers(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	existingNullifiers := make(map[externalapi.DomainNullifier]struct{}, len(tx.JoinSplits)*constants.JoinSplitInputs)
	for _, joinSplit := range tx.JoinSplits {
		for _, nullifier := range joinSplit.Nullifiers {
			if _, exists := existingNullifiers[nullifier]; exists {
				return errors.Wrapf(ruleerrors.ErrDuplicateJoinSplitNullifiers, "transaction contains "+
					"join-split nullifier %s more than once", nullifier)
			}
			existingNullifiers[nullifier] = struct{}{}
		}
	}
	return nil
}

func checkDuplicateSpendNullifiers(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	existingNullifiers := make(map[externalapi.DomainNullifier]struct{}, len(tx.ShieldedSpends))
	for _, spend := range tx.ShieldedSpends {
		if _, exists := existingNullifiers[spend.Nullifier]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateSpendNullifiers, "transaction contains "+
				"spend description nullifier %s more than once", spend.Nullifier)
		}
		existingNullifiers[spend.Nullifier] = struct{}{}
	}
	return nil
}

// checkCoinbaseOrPrevouts applies the coinbase rules to coinbase
// transactions. Any other transaction must not reference the null outpoint
// or spend a null nullifier.
func checkCoinbaseOrPrevouts(tx *externalapi.DomainTransaction, _ *valueAccounting) error {
	if transactionhelper.IsCoinBase(tx) {
		scriptLength := len(tx.Inputs[0].SignatureScript)
		if scriptLength < constants.MinCoinbaseScriptLength || scriptLength > constants.MaxCoinbaseScriptLength {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseScriptLength, "coinbase transaction script length "+
				"of %d is out of range (min: %d, max: %d)",
				scriptLength, constants.MinCoinbaseScriptLength, constants.MaxCoinbaseScriptLength)
		}
		if len(tx.ShieldedSpends) > 0 {
			return errors.Wrapf(ruleerrors.ErrCoinbaseWithSpendDescription, "coinbase transaction has %d "+
				"spend descriptions", len(tx.ShieldedSpends))
		}
		return nil
	}

	for i, input := range tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			return errors.Wrapf(ruleerrors.ErrNullPreviousOutpoint, "transaction input %d refers to the "+
				"null outpoint", i)
		}
	}
	for i, spend := range tx.ShieldedSpends {
		if spend.Nullifier.IsNull() {
			return errors.Wrapf(ruleerrors.ErrSpendDescriptionNullifierNull, "spend description %d has a "+
				"null nullifier", i)
		}
	}
	return nil
}
