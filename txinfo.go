// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package txeval

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/ledger"
)

func txInInfoList(
	inputs []ledger.TransactionInput,
	resolved []ledger.TransactionOutput,
	fieldName string,
) ([]data.PlutusData, error) {
	if len(inputs) != len(resolved) {
		return nil, fmt.Errorf(
			"transaction has %d %s but %d resolved outputs were provided",
			len(inputs),
			fieldName,
			len(resolved),
		)
	}
	ret := make([]data.PlutusData, 0, len(inputs))
	for idx, input := range inputs {
		tmpData, err := TxInInfoPlutusData(input, resolved[idx])
		if err != nil {
			return nil, err
		}
		ret = append(ret, tmpData)
	}
	return ret, nil
}

func withdrawalsPlutusData(
	withdrawals map[*ledger.Address]uint64,
) (data.PlutusData, error) {
	tmpAddrs := make([]*ledger.Address, 0, len(withdrawals))
	for addr := range withdrawals {
		tmpAddrs = append(tmpAddrs, addr)
	}
	// Sort by reward address bytes for a deterministic map order
	sort.Slice(tmpAddrs, func(i, j int) bool {
		return bytes.Compare(tmpAddrs[i].Bytes(), tmpAddrs[j].Bytes()) < 0
	})
	tmpPairs := make([][2]data.PlutusData, 0, len(tmpAddrs))
	for _, addr := range tmpAddrs {
		credPd, err := StakingHash(addr.StakingPayload())
		if err != nil {
			return nil, err
		}
		tmpPairs = append(
			tmpPairs,
			[2]data.PlutusData{
				credPd,
				data.NewInteger(
					new(big.Int).SetUint64(withdrawals[addr]),
				),
			},
		)
	}
	return data.NewMap(tmpPairs), nil
}

// datumTablePlutusData builds the script context datum table: every datum
// visible to the transaction, keyed by its hash. Inline datums from outputs
// and resolved inputs come first, witness set datums after, with duplicates
// by hash dropped
func datumTablePlutusData(
	tx *ledger.Transaction,
	resolvedInputs []ledger.TransactionOutput,
	resolvedRefInputs []ledger.TransactionOutput,
) data.PlutusData {
	var tmpPairs [][2]data.PlutusData
	seen := map[ledger.DatumHash]struct{}{}
	addDatum := func(datum *ledger.Datum) {
		if datum == nil {
			return
		}
		datumHash := datum.Hash()
		if _, ok := seen[datumHash]; ok {
			return
		}
		seen[datumHash] = struct{}{}
		tmpPairs = append(
			tmpPairs,
			[2]data.PlutusData{
				data.NewByteString(datumHash.Bytes()),
				datum.Data,
			},
		)
	}
	for _, output := range tx.Body.Outputs() {
		addDatum(output.Datum())
	}
	for _, output := range resolvedInputs {
		addDatum(output.Datum())
	}
	for _, output := range resolvedRefInputs {
		addDatum(output.Datum())
	}
	for _, datum := range tx.Witnesses().PlutusData() {
		addDatum(&datum)
	}
	return data.NewMap(tmpPairs)
}

// redeemerTablePlutusData builds the script context redeemer table in
// witness set order, keyed by each redeemer's content hash
func redeemerTablePlutusData(tx *ledger.Transaction) data.PlutusData {
	redeemers := tx.Witnesses().Redeemers()
	tmpPairs := make([][2]data.PlutusData, 0, len(redeemers))
	for _, redeemer := range redeemers {
		redeemerHash := redeemer.Hash()
		tmpPairs = append(
			tmpPairs,
			[2]data.PlutusData{
				data.NewByteString(redeemerHash.Bytes()),
				redeemer.ToPlutusData(),
			},
		)
	}
	return data.NewMap(tmpPairs)
}

// BuildTxInfo assembles the transaction info portion of the script context.
// Transactions carrying certificates are rejected
func BuildTxInfo(
	tx *ledger.Transaction,
	resolvedInputs []ledger.TransactionOutput,
	resolvedRefInputs []ledger.TransactionOutput,
	slotConfig *SlotConfig,
) (data.PlutusData, error) {
	if certCount := len(tx.Body.Certificates()); certCount > 0 {
		return nil, CertificatesUnsupportedError{Count: certCount}
	}
	inputsPd, err := txInInfoList(
		tx.Body.Inputs(),
		resolvedInputs,
		"inputs",
	)
	if err != nil {
		return nil, err
	}
	refInputsPd, err := txInInfoList(
		tx.Body.ReferenceInputs(),
		resolvedRefInputs,
		"reference inputs",
	)
	if err != nil {
		return nil, err
	}
	outputsPd := make([]data.PlutusData, 0, len(tx.Body.Outputs()))
	for _, output := range tx.Body.Outputs() {
		tmpData, err := TxOutPlutusData(output)
		if err != nil {
			return nil, err
		}
		outputsPd = append(outputsPd, tmpData)
	}
	withdrawalsPd, err := withdrawalsPlutusData(tx.Body.Withdrawals())
	if err != nil {
		return nil, err
	}
	signatories := tx.Body.RequiredSigners()
	signatoriesPd := make([]data.PlutusData, 0, len(signatories))
	for _, signer := range signatories {
		signatoriesPd = append(
			signatoriesPd,
			data.NewByteString(signer.Bytes()),
		)
	}
	txId := tx.Hash()
	return data.NewConstr(
		0,
		data.NewList(inputsPd...),
		data.NewList(refInputsPd...),
		data.NewList(outputsPd...),
		ValueFromAmount(tx.Body.Fee(), nil),
		ValueFromMintAssets(tx.Body.Mint()),
		data.NewList(),
		withdrawalsPd,
		TimeRange(
			tx.Body.ValidityIntervalStart(),
			tx.Body.TTL(),
			slotConfig,
		),
		data.NewList(signatoriesPd...),
		datumTablePlutusData(tx, resolvedInputs, resolvedRefInputs),
		redeemerTablePlutusData(tx),
		data.NewConstr(
			0,
			data.NewByteString(txId.Bytes()),
		),
	), nil
}
