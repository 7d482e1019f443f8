// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"math/big"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model/externalapi"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/amount"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/constants"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/math"
)

// These variables are the proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowMax is the highest proof of work value a block can have for
	// the main network. It is the value 2^243 - 1.
	mainPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 243), bigOne)

	// testnetPowMax is the highest proof of work value a block can have
	// for the test network. It is the value 2^251 - 1.
	testnetPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 251), bigOne)

	// regtestPowMax is the highest proof of work value a block can have
	// for the regression test network. It is the value 2^255 - 1.
	regtestPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// zkParamsURL is where the zk-SNARK parameters are downloaded from.
const zkParamsURL = "https://download.z.cash/downloads/"

// ZKParamsFile describes a zk-SNARK parameters file and the SHA-256 digest
// it must have before it is trusted.
type ZKParamsFile struct {
	Name   string
	SHA256 string
}

// zkParamsFiles are the parameter files used by the Sapling and
// Sprout (Groth16) circuits.
var zkParamsFiles = []ZKParamsFile{
	{Name: "sapling-spend.params", SHA256: "8e48ffd23abb3a5fd9c5589204f32d9c31285a04b78096ba40a79b75677efc13"},
	{Name: "sapling-output.params", SHA256: "2f0ebbcbb9bb0bcffe95a397e7eba89c29eb4dde6191c339db88570e3f3fb0e4"},
	{Name: "sprout-groth16.params", SHA256: "b685d700c60328498fbde589c8c7c484c722b788b265b72af448a5bf0ee55b50"},
}

// Params defines a network by its parameters.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// MaxBlockWeight is the maximum weight of a block. A single transaction
	// heavier than that is rejected before block assembly.
	MaxBlockWeight uint64

	// WitnessScaleFactor is the weight of a non-witness byte.
	WitnessScaleFactor uint64

	// PowMax defines the highest allowed proof of work value for a block
	// as a uint256.
	PowMax *big.Int

	// PowMaxBits is PowMax in compact form.
	PowMaxBits uint32

	// CoinbaseReward is the value of blocks assembled by the mining
	// harness.
	CoinbaseReward amount.Amount

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *externalapi.DomainBlock

	// ZKParamsURL is the base URL the zk-SNARK parameters are fetched from.
	ZKParamsURL string

	// ZKParams lists the zk-SNARK parameter files the node needs.
	ZKParams []ZKParamsFile
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:               "mainnet",
	MaxBlockWeight:     constants.MaxBlockWeight,
	WitnessScaleFactor: constants.WitnessScaleFactor,
	PowMax:             mainPowMax,
	PowMaxBits:         math.BigToCompact(mainPowMax),
	CoinbaseReward:     50 * constants.CoinPerLTZ,
	GenesisBlock:       &genesisBlock,
	ZKParamsURL:        zkParamsURL,
	ZKParams:           zkParamsFiles,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:               "testnet",
	MaxBlockWeight:     constants.MaxBlockWeight,
	WitnessScaleFactor: constants.WitnessScaleFactor,
	PowMax:             testnetPowMax,
	PowMaxBits:         math.BigToCompact(testnetPowMax),
	CoinbaseReward:     50 * constants.CoinPerLTZ,
	GenesisBlock:       &testnetGenesisBlock,
	ZKParamsURL:        zkParamsURL,
	ZKParams:           zkParamsFiles,
}

// RegtestParams defines the network parameters for the regression test
// network. Its proof of work limit is low enough for tests to mine blocks.
var RegtestParams = Params{
	Name:               "regtest",
	MaxBlockWeight:     constants.MaxBlockWeight,
	WitnessScaleFactor: constants.WitnessScaleFactor,
	PowMax:             regtestPowMax,
	PowMaxBits:         math.BigToCompact(regtestPowMax),
	CoinbaseReward:     50 * constants.CoinPerLTZ,
	GenesisBlock:       &regtestGenesisBlock,
	ZKParamsURL:        zkParamsURL,
	ZKParams:           zkParamsFiles,
}
