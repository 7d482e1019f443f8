// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/transactionhelper"
)

// genesisCoinbaseScript pushes the message embedded in every genesis block.
var genesisCoinbaseScript = append([]byte{0x04, 0xff, 0xff, 0x07, 0x1f, 0x01, 0x04, 0x24},
	[]byte("LitecoinZ genesis: no prior state, one shot")...)

// genesisCoinbaseTx is the coinbase transaction of the genesis blocks. It
// pays nothing so that genesis outputs never enter the UTXO set.
var genesisCoinbaseTx = transactionhelper.NewCoinbaseTransaction(genesisCoinbaseScript,
	&externalapi.DomainTransactionOutput{Value: 0, ScriptPublicKey: []byte{0x6a}})

func newGenesisBlock(time uint32, bits uint32) externalapi.DomainBlock {
	transactions := []*externalapi.DomainTransaction{genesisCoinbaseTx}
	return externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:        4,
			HashMerkleRoot: consensushashing.MerkleRoot(transactions),
			Time:           time,
			Bits:           bits,
		},
		Transactions: transactions,
	}
}

var (
	genesisBlock        = newGenesisBlock(1_483_056_000, 0x1f07ffff)
	testnetGenesisBlock = newGenesisBlock(1_483_056_001, 0x2007ffff)
	regtestGenesisBlock = newGenesisBlock(1_483_056_002, 0x207fffff)
)

// GenesisHash returns the hash of the genesis block of the network.
func (p *Params) GenesisHash() *externalapi.DomainHash {
	return consensushashing.BlockHash(p.GenesisBlock)
}
