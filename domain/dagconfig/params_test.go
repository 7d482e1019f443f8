package dagconfig

import (
	"testing"

	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/math"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
)

func TestPowMaxBits(t *testing.T) {
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegtestParams} {
		target := math.CompactToBig(params.PowMaxBits)
		if target.Cmp(params.PowMax) > 0 {
			t.Errorf("TestPowMaxBits: %s: compact target %x is above PowMax %x", params.Name, target, params.PowMax)
		}
	}
	if RegtestParams.PowMaxBits != 0x207fffff {
		t.Errorf("TestPowMaxBits: expected regtest bits 0x207fffff, got %x", RegtestParams.PowMaxBits)
	}
}

func TestGenesisBlocks(t *testing.T) {
	hashes := map[string]bool{}
	for _, params := range []*Params{&MainnetParams, &TestnetParams, &RegtestParams} {
		coinbase := params.GenesisBlock.Transactions[0]
		if !transactionhelper.IsCoinBase(coinbase) {
			t.Errorf("TestGenesisBlocks: %s: the first genesis transaction is not a coinbase", params.Name)
		}
		hash := params.GenesisHash().String()
		if hashes[hash] {
			t.Errorf("TestGenesisBlocks: %s: genesis hash %s is shared with another network", params.Name, hash)
		}
		hashes[hash] = true
	}
}
