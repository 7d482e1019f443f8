package constants

import "math"

const (
	// TransactionVersion is the Sapling transaction version this node
	// serializes and validates.
	TransactionVersion = 4

	// OverwinterFlag is set in the serialized header of every
	// transaction that carries a version group ID.
	OverwinterFlag = 1 << 31

	// SaplingVersionGroupID is the version group ID of Sapling transactions.
	SaplingVersionGroupID = 0x892F2085

	// CoinPerLTZ is the number of base units in one coin (1 LTZ).
	CoinPerLTZ = 100_000_000

	// MaxMoney is the maximum amount of base units that can ever exist.
	// No single amount, nor any total computed during transaction
	// validation, may exceed it.
	MaxMoney = 84_000_000 * CoinPerLTZ

	// MaxBlockWeight is the maximum weight a block may have.
	MaxBlockWeight = 4_000_000

	// WitnessScaleFactor is the weight of a single byte of non-witness
	// transaction data.
	WitnessScaleFactor = 4

	// MinCoinbaseScriptLength and MaxCoinbaseScriptLength bound the length
	// of the signature script of a coinbase input.
	MinCoinbaseScriptLength = 2
	MaxCoinbaseScriptLength = 100

	// NullOutpointIndex is the output index of the null outpoint which is
	// referenced only by coinbase inputs.
	NullOutpointIndex uint32 = math.MaxUint32

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = math.MaxUint32

	// JoinSplitInputs and JoinSplitOutputs are the number of notes spent
	// and created by a single join-split description.
	JoinSplitInputs  = 2
	JoinSplitOutputs = 2

	// GrothProofSize is the size of a Groth16 zk-SNARK proof.
	GrothProofSize = 192

	// NoteEncryptedCiphertextSize is the size of the encrypted note in a
	// Sapling output description.
	NoteEncryptedCiphertextSize = 580

	// OutCiphertextSize is the size of the outgoing ciphertext in a Sapling
	// output description.
	OutCiphertextSize = 80

	// JoinSplitCiphertextSize is the size of each note ciphertext of a
	// join-split description.
	JoinSplitCiphertextSize = 601

	// SignatureSize is the size of spend authorization, binding and
	// join-split signatures.
	SignatureSize = 64
)
