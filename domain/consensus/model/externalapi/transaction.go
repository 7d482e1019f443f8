package externalapi

import (
	"fmt"

	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/amount"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
)

// DomainTransaction represents a LitecoinZ transaction. Value moves between
// three pools: the transparent pool (Inputs and Outputs), the Sprout pool
// (JoinSplits) and the Sapling pool (ShieldedSpends and ShieldedOutputs,
// balanced against the transparent pool by ValueBalance).
type DomainTransaction struct {
	Version        int32
	VersionGroupID uint32
	Inputs         []*DomainTransactionInput
	Outputs        []*DomainTransactionOutput
	LockTime       uint32
	ExpiryHeight   uint32

	// ValueBalance is the net value moving from the Sapling pool into the
	// transparent pool. A negative value moves value out of it.
	ValueBalance    amount.Amount
	ShieldedSpends  []*DomainSpendDescription
	ShieldedOutputs []*DomainOutputDescription

	JoinSplits      []*DomainJoinSplit
	JoinSplitPubKey DomainHash
	JoinSplitSig    [constants.SignatureSize]byte

	BindingSig [constants.SignatureSize]byte
}

// DomainTransactionInput represents a transparent transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint32
}

// DomainOutpoint represents a reference to a transparent output of a
// previous transaction
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NewNullOutpoint returns the outpoint referenced by coinbase inputs
func NewNullOutpoint() DomainOutpoint {
	return DomainOutpoint{Index: constants.NullOutpointIndex}
}

// IsNull returns whether the outpoint is the null outpoint
func (op DomainOutpoint) IsNull() bool {
	return op.Index == constants.NullOutpointIndex && op.TransactionID == DomainTransactionID{}
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// DomainTransactionOutput represents a transparent transaction output
type DomainTransactionOutput struct {
	Value           amount.Amount
	ScriptPublicKey []byte
}

// DomainTransactionID represents the ID of a transaction
type DomainTransactionID DomainHash

// String stringifies a transaction ID.
func (id DomainTransactionID) String() string {
	return DomainHash(id).String()
}

// DomainNullifier marks a shielded note as spent
type DomainNullifier DomainHash

// IsNull returns whether all the bytes of the nullifier are zero
func (nf DomainNullifier) IsNull() bool {
	return nf == DomainNullifier{}
}

// String stringifies a nullifier.
func (nf DomainNullifier) String() string {
	return DomainHash(nf).String()
}

// DomainJoinSplit is a Sprout join-split description. It spends two notes,
// creates two notes and moves VPubOld from the transparent pool into the
// Sprout pool and VPubNew from the Sprout pool into the transparent pool.
type DomainJoinSplit struct {
	VPubOld      amount.Amount
	VPubNew      amount.Amount
	Anchor       DomainHash
	Nullifiers   [constants.JoinSplitInputs]DomainNullifier
	Commitments  [constants.JoinSplitOutputs]DomainHash
	EphemeralKey DomainHash
	RandomSeed   DomainHash
	MACs         [constants.JoinSplitInputs]DomainHash
	Proof        [constants.GrothProofSize]byte
	Ciphertexts  [constants.JoinSplitOutputs][constants.JoinSplitCiphertextSize]byte
}

// DomainSpendDescription is a Sapling spend description
type DomainSpendDescription struct {
	ValueCommitment DomainHash
	Anchor          DomainHash
	Nullifier       DomainNullifier
	RandomizedKey   DomainHash
	ZKProof         [constants.GrothProofSize]byte
	SpendAuthSig    [constants.SignatureSize]byte
}

// DomainOutputDescription is a Sapling output description
type DomainOutputDescription struct {
	ValueCommitment DomainHash
	NoteCommitment  DomainHash
	EphemeralKey    DomainHash
	EncCiphertext   [constants.NoteEncryptedCiphertextSize]byte
	OutCiphertext   [constants.OutCiphertextSize]byte
	ZKProof         [constants.GrothProofSize]byte
}
