package mining

import (
	"context"
	"fmt"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model"
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/processes/transactionvalidator"
	"github.com/MarkLTZ/bitcoin/domain/consensus/ruleerrors"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/math"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/pow"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
	"github.com/MarkLTZ/bitcoin/domain/dagconfig"
	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/infrastructure/metrics"
	"github.com/pkg/errors"
)

// ErrMaxTriesExceeded indicates no nonce satisfying the block's target was
// found within the allowed number of tries.
var ErrMaxTriesExceeded = errors.New("max tries exceeded while searching for a block nonce")

// blockHeaderSize is the serialized size of a block header.
const blockHeaderSize = 4 + 4*externalapi.DomainHashSize + 4 + 4

// ctxCheckInterval is the number of nonces tried between context checks.
const ctxCheckInterval = 0xFFFF

// Harness builds and mines blocks on top of a chain that starts at the
// network's genesis block. It is not safe for concurrent use.
type Harness struct {
	params    *dagconfig.Params
	validator model.TransactionValidator
	source    TxSource
	metrics   *metrics.Metrics

	tipHash *externalapi.DomainHash
	height  uint64
	time    uint32
}

// NewHarness returns a Harness that mines transactions from source
func NewHarness(params *dagconfig.Params, source TxSource, metrics *metrics.Metrics) *Harness {
	return &Harness{
		params:    params,
		validator: transactionvalidator.New(params),
		source:    source,
		metrics:   metrics,
		tipHash:   params.GenesisHash(),
		time:      params.GenesisBlock.Header.Time,
	}
}

// TipHash returns the hash of the last block mined by the harness
func (h *Harness) TipHash() *externalapi.DomainHash {
	return h.tipHash
}

// Height returns the height of the last block mined by the harness
func (h *Harness) Height() uint64 {
	return h.height
}

// PrepareBlock assembles a block on top of the current tip: a coinbase paying
// coinbaseScriptPublicKey followed by every transaction of the source that
// passes validation and fits in the block. The block's nonce is not solved.
func (h *Harness) PrepareBlock(coinbaseScriptPublicKey []byte) (*externalapi.DomainBlock, error) {
	height := h.height + 1
	coinbase := newCoinbaseTransaction(height, h.params.CoinbaseReward, coinbaseScriptPublicKey)
	err := h.validator.ValidateTransactionInIsolation(coinbase)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid coinbase for block at height %d", height)
	}

	transactions := []*externalapi.DomainTransaction{coinbase}
	weight := (blockHeaderSize + serialization.VarIntSerializeSize(1) +
		serialization.TransactionSerializeSize(coinbase)) * h.params.WitnessScaleFactor
	for _, transaction := range h.source.Transactions() {
		transactionID := consensushashing.TransactionID(transaction)
		if transactionhelper.IsCoinBase(transaction) {
			log.Warnf("Skipping coinbase transaction %s offered by the transaction source", transactionID)
			continue
		}
		err := h.validator.ValidateTransactionInIsolation(transaction)
		if err != nil {
			reason, _ := ruleerrors.RejectReason(err)
			log.Warnf("Skipping invalid transaction %s (%s): %s", transactionID, reason, err)
			continue
		}
		transactionWeight := serialization.TransactionSerializeSize(transaction) * h.params.WitnessScaleFactor
		if weight+transactionWeight > h.params.MaxBlockWeight {
			log.Debugf("Transaction %s does not fit in block at height %d", transactionID, height)
			continue
		}
		weight += transactionWeight
		transactions = append(transactions, transaction)
	}

	block := &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:        4,
			HashPrevBlock:  *h.tipHash,
			HashMerkleRoot: consensushashing.MerkleRoot(transactions),
			Time:           h.time + 1,
			Bits:           h.params.PowMaxBits,
		},
		Transactions: transactions,
	}
	log.Debugf("Prepared block at height %d with %d transactions and weight %d",
		height, len(transactions), weight)
	return block, nil
}

// MineBlock prepares a block, solves it, and makes it the new tip. The
// transaction source is notified of the block.
func (h *Harness) MineBlock(ctx context.Context, coinbaseScriptPublicKey []byte,
	maxTries uint64) (*externalapi.DomainBlock, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, fmt.Sprintf("MineBlock at height %d", h.height+1))
	defer onEnd()

	block, err := h.PrepareBlock(coinbaseScriptPublicKey)
	if err != nil {
		return nil, err
	}
	tries, err := SolveBlock(ctx, block, maxTries)
	if err != nil {
		return nil, err
	}
	err = pow.CheckProofOfWork(block.Header, h.params.PowMax)
	if err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordBlockMined(tries)
	}

	h.tipHash = consensushashing.BlockHash(block)
	h.height++
	h.time = block.Header.Time
	h.source.HandleNewBlock(block)
	log.Infof("Mined block %s at height %d after %d tries", h.tipHash, h.height, tries)
	return block, nil
}

// GenerateToScript mines a block paying to scriptPublicKey and returns the
// outpoint of the coinbase output.
func (h *Harness) GenerateToScript(ctx context.Context, scriptPublicKey []byte,
	maxTries uint64) (*externalapi.DomainOutpoint, error) {

	block, err := h.MineBlock(ctx, scriptPublicKey, maxTries)
	if err != nil {
		return nil, err
	}
	return &externalapi.DomainOutpoint{
		TransactionID: *consensushashing.TransactionID(block.Transactions[0]),
		Index:         0,
	}, nil
}

// SolveBlock increments the block's nonce until its header hash satisfies
// the target encoded in its bits. It returns the number of nonces tried.
func SolveBlock(ctx context.Context, block *externalapi.DomainBlock, maxTries uint64) (uint64, error) {
	header := block.Header
	target := math.CompactToBig(header.Bits)
	for tries := uint64(0); tries < maxTries; tries++ {
		if tries%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return tries, ctx.Err()
			default:
			}
		}

		incrementNonce(&header.Nonce)
		if pow.CheckProofOfWorkWithTarget(header, target) {
			return tries + 1, nil
		}
	}
	return maxTries, errors.Wrapf(ErrMaxTriesExceeded, "no nonce found in %d tries", maxTries)
}

// incrementNonce adds one to the nonce, treated as a little-endian 256-bit
// number.
func incrementNonce(nonce *externalapi.DomainHash) {
	for i := range nonce {
		nonce[i]++
		if nonce[i] != 0 {
			return
		}
	}
}
