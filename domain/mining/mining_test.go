package mining

import (
	"bytes"
	"context"
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/pow"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
	"github.com/MarkLTZ/bitcoin/domain/dagconfig"
	"github.com/MarkLTZ/bitcoin/infrastructure/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var payToScript = []byte{0x51}

func spendTransaction(index uint32) *externalapi.DomainTransaction {
	return transactionhelper.NewNativeTransaction(
		[]*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.DomainOutpoint{TransactionID: externalapi.DomainTransactionID{7}, Index: index},
			SignatureScript:  []byte{0x51},
		}},
		[]*externalapi.DomainTransactionOutput{{Value: 1, ScriptPublicKey: payToScript}},
	)
}

func TestCoinbaseSignatureScript(t *testing.T) {
	tests := []struct {
		height   uint64
		expected []byte
	}{
		{0, []byte{0x00, op0}},
		{1, []byte{0x01, 0x01, op0}},
		{127, []byte{0x01, 0x7f, op0}},
		{128, []byte{0x02, 0x80, 0x00, op0}},
		{0x1234, []byte{0x02, 0x34, 0x12, op0}},
		{^uint64(0), []byte{0x09, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, op0}},
	}
	for _, test := range tests {
		script := coinbaseSignatureScript(test.height)
		if !bytes.Equal(script, test.expected) {
			t.Errorf("TestCoinbaseSignatureScript: height %d: expected %x, got %x", test.height, test.expected, script)
		}
		if len(script) < constants.MinCoinbaseScriptLength || len(script) > constants.MaxCoinbaseScriptLength {
			t.Errorf("TestCoinbaseSignatureScript: height %d: script length %d is out of range", test.height, len(script))
		}
	}
}

func TestPrepareBlock(t *testing.T) {
	valid := spendTransaction(0)
	invalid := spendTransaction(1)
	invalid.Outputs[0].Value = -1
	coinbase := transactionhelper.NewCoinbaseTransaction([]byte{1, 2}, &externalapi.DomainTransactionOutput{Value: 1})
	source := &fakeTxSource{transactions: []*externalapi.DomainTransaction{invalid, coinbase, valid}}

	harness := NewHarness(&dagconfig.RegtestParams, source, nil)
	block, err := harness.PrepareBlock(payToScript)
	if err != nil {
		t.Fatalf("TestPrepareBlock: unexpected error: %s", err)
	}

	if len(block.Transactions) != 2 || block.Transactions[1] != valid {
		t.Fatalf("TestPrepareBlock: expected the coinbase and the valid transaction, got %d transactions",
			len(block.Transactions))
	}
	if !transactionhelper.IsCoinBase(block.Transactions[0]) {
		t.Fatalf("TestPrepareBlock: the first transaction is not a coinbase")
	}
	if block.Transactions[0].Outputs[0].Value != dagconfig.RegtestParams.CoinbaseReward {
		t.Fatalf("TestPrepareBlock: unexpected coinbase value %s", block.Transactions[0].Outputs[0].Value)
	}
	if block.Header.HashMerkleRoot != consensushashing.MerkleRoot(block.Transactions) {
		t.Fatalf("TestPrepareBlock: wrong merkle root")
	}
	if block.Header.HashPrevBlock != *dagconfig.RegtestParams.GenesisHash() {
		t.Fatalf("TestPrepareBlock: the block does not build on the genesis block")
	}
}

func TestPrepareBlockRespectsWeight(t *testing.T) {
	params := dagconfig.RegtestParams
	params.MaxBlockWeight = 2_000
	big := spendTransaction(0)
	big.Outputs[0].ScriptPublicKey = make([]byte, 300)
	small := spendTransaction(1)
	source := &fakeTxSource{transactions: []*externalapi.DomainTransaction{big, small}}

	block, err := NewHarness(&params, source, nil).PrepareBlock(payToScript)
	if err != nil {
		t.Fatalf("TestPrepareBlockRespectsWeight: unexpected error: %s", err)
	}
	if len(block.Transactions) != 2 || block.Transactions[1] != small {
		t.Fatalf("TestPrepareBlockRespectsWeight: expected only the small transaction to be included")
	}
}

func TestMineBlock(t *testing.T) {
	valid := spendTransaction(0)
	source := &fakeTxSource{transactions: []*externalapi.DomainTransaction{valid}}
	harness := NewHarness(&dagconfig.RegtestParams, source, metrics.NewMetrics(prometheus.NewRegistry()))

	outpoint, err := harness.GenerateToScript(context.Background(), payToScript, 1_000)
	if err != nil {
		t.Fatalf("TestMineBlock: unexpected error: %s", err)
	}
	if len(source.blocks) != 1 {
		t.Fatalf("TestMineBlock: the transaction source was not notified of the block")
	}
	block := source.blocks[0]
	if err := pow.CheckProofOfWork(block.Header, dagconfig.RegtestParams.PowMax); err != nil {
		t.Fatalf("TestMineBlock: mined block has invalid proof of work: %s", err)
	}
	if *harness.TipHash() != *consensushashing.BlockHash(block) || harness.Height() != 1 {
		t.Fatalf("TestMineBlock: the mined block is not the new tip")
	}
	if outpoint.TransactionID != *consensushashing.TransactionID(block.Transactions[0]) || outpoint.Index != 0 {
		t.Fatalf("TestMineBlock: unexpected coinbase outpoint %s", outpoint)
	}

	second, err := harness.MineBlock(context.Background(), payToScript, 1_000)
	if err != nil {
		t.Fatalf("TestMineBlock: unexpected error mining a second block: %s", err)
	}
	if second.Header.HashPrevBlock != *consensushashing.BlockHash(block) {
		t.Fatalf("TestMineBlock: the second block does not build on the first")
	}
	if *consensushashing.TransactionID(second.Transactions[0]) == outpoint.TransactionID {
		t.Fatalf("TestMineBlock: coinbases of different heights share an ID")
	}
}

func TestSolveBlockMaxTries(t *testing.T) {
	// A target of 1 is practically unreachable.
	block := &externalapi.DomainBlock{Header: &externalapi.DomainBlockHeader{Bits: 0x03000001}}
	tries, err := SolveBlock(context.Background(), block, 16)
	if !errors.Is(err, ErrMaxTriesExceeded) {
		t.Fatalf("TestSolveBlockMaxTries: expected ErrMaxTriesExceeded, got: %v", err)
	}
	if tries != 16 {
		t.Fatalf("TestSolveBlockMaxTries: expected 16 tries, got %d", tries)
	}
}

func TestSolveBlockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := &externalapi.DomainBlock{Header: &externalapi.DomainBlockHeader{Bits: 0x03000001}}
	_, err := SolveBlock(ctx, block, 1_000_000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("TestSolveBlockCancelled: expected context.Canceled, got: %v", err)
	}
}

func TestIncrementNonce(t *testing.T) {
	nonce := externalapi.DomainHash{0xff, 0xff, 0x01}
	incrementNonce(&nonce)
	if nonce != (externalapi.DomainHash{0x00, 0x00, 0x02}) {
		t.Fatalf("TestIncrementNonce: carry was not propagated: %s", nonce)
	}
}
