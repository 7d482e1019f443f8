// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"

	"github.com/MarkLTZ/bitcoin/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation and use the Err field to access the
// underlying error, which will be either a TxRuleError or a
// ruleerrors.RuleError.
type RuleError struct {
	Err error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.Err
}

// RejectCode represents a numeric value by which a remote peer indicates
// why a message was rejected.
type RejectCode uint8

// These constants define the various supported reject codes.
const (
	RejectMalformed   RejectCode = 0x01
	RejectInvalid     RejectCode = 0x10
	RejectDuplicate   RejectCode = 0x12
	RejectMempoolFull RejectCode = 0x45
)

// Map of reject codes back strings for pretty printing.
var rejectCodeStrings = map[RejectCode]string{
	RejectMalformed:   "REJECT_MALFORMED",
	RejectInvalid:     "REJECT_INVALID",
	RejectDuplicate:   "REJECT_DUPLICATE",
	RejectMempoolFull: "REJECT_MEMPOOLFULL",
}

// String returns the RejectCode in human-readable form.
func (code RejectCode) String() string {
	if s, ok := rejectCodeStrings[code]; ok {
		return s
	}

	return fmt.Sprintf("Unknown RejectCode (%d)", uint8(code))
}

// TxRuleError identifies a rule violation. It is used to indicate that
// processing of a transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation and access the RejectCode field to
// ascertain the specific reason for the rule violation.
type TxRuleError struct {
	RejectCode  RejectCode // The code to send with reject messages
	Reason      string     // Machine-readable reason, relayed unchanged
	Description string     // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e TxRuleError) Error() string {
	return e.Description
}

// txRuleError creates an underlying TxRuleError with the given a set of
// arguments and returns a RuleError that encapsulates it.
func txRuleError(c RejectCode, reason string, desc string) RuleError {
	return RuleError{
		Err: TxRuleError{RejectCode: c, Reason: reason, Description: desc},
	}
}

// consensusRuleError wraps an error of the consensus transaction validator
// in a RuleError, keeping it reachable through errors.Is and errors.As.
func consensusRuleError(err error) error {
	var consensusRuleErr ruleerrors.RuleError
	if !errors.As(err, &consensusRuleErr) {
		return err
	}
	return RuleError{Err: err}
}

// extractRejectCode attempts to return a relevant reject code for a given error
// by examining the error for known types. It will return true if a code
// was successfully extracted.
func extractRejectCode(err error) (RejectCode, bool) {
	// Pull the underlying error out of a RuleError.
	var ruleErr RuleError
	if ok := errors.As(err, &ruleErr); ok {
		err = ruleErr.Err
	}

	var trErr TxRuleError
	if errors.As(err, &trErr) {
		return trErr.RejectCode, true
	}

	// Every consensus rule a transaction can break makes it invalid.
	var consensusRuleErr ruleerrors.RuleError
	if errors.As(err, &consensusRuleErr) {
		return RejectInvalid, true
	}

	return RejectInvalid, false
}

// ExtractRejectReason returns the reject code and reason that should be sent
// to a peer whose transaction failed with err. The reason is the consensus
// reject reason when there is one, and the reject code's string otherwise.
func ExtractRejectReason(err error) (RejectCode, string, bool) {
	code, ok := extractRejectCode(err)
	if !ok {
		return code, "", false
	}

	var trErr TxRuleError
	if errors.As(err, &trErr) && trErr.Reason != "" {
		return code, trErr.Reason, true
	}
	if reason, ok := ruleerrors.RejectReason(err); ok {
		return code, reason, true
	}
	return code, code.String(), true
}
