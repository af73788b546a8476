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
	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/ledger"
)

// ScriptInvocation pairs a PlutusV2 script with the witnesses and script
// context for a single execution
type ScriptInvocation struct {
	Script        ledger.PlutusV2Script
	Datum         *ledger.Datum
	Redeemer      ledger.Redeemer
	ScriptContext data.PlutusData
}

type redeemerKey struct {
	tag   ledger.RedeemerTag
	index uint32
}

// redeemerIndex maps redeemers by tag and index, rejecting duplicates
func redeemerIndex(
	redeemers ledger.Redeemers,
) (map[redeemerKey]ledger.Redeemer, error) {
	ret := make(map[redeemerKey]ledger.Redeemer, len(redeemers))
	for _, redeemer := range redeemers {
		key := redeemerKey{
			tag:   redeemer.Tag,
			index: redeemer.Index,
		}
		if _, ok := ret[key]; ok {
			return nil, MissingRedeemerError{
				Tag:       redeemer.Tag,
				Index:     redeemer.Index,
				Duplicate: true,
			}
		}
		ret[key] = redeemer
	}
	return ret, nil
}

func addV2RefScripts(
	pool map[ledger.ScriptHash]ledger.PlutusV2Script,
	outputs []ledger.TransactionOutput,
) {
	for _, output := range outputs {
		scriptRef := output.ScriptRef()
		if scriptRef == nil {
			continue
		}
		if script, ok := scriptRef.Script.(*ledger.PlutusV2Script); ok {
			pool[script.Hash()] = *script
		}
	}
}

// GenerateScriptInvocations determines every PlutusV2 script execution a
// transaction requires and builds the script context for each. Spending
// invocations come first in input order, then minting invocations in policy
// ID order. Spending scripts may come from the witness set or from reference
// scripts on resolved inputs, minting scripts only from the witness set
func GenerateScriptInvocations(
	tx *ledger.Transaction,
	resolvedInputs []ledger.TransactionOutput,
	resolvedRefInputs []ledger.TransactionOutput,
	slotConfig *SlotConfig,
) ([]ScriptInvocation, error) {
	txInfo, err := BuildTxInfo(
		tx,
		resolvedInputs,
		resolvedRefInputs,
		slotConfig,
	)
	if err != nil {
		return nil, err
	}
	redeemers, err := redeemerIndex(tx.Witnesses().Redeemers())
	if err != nil {
		return nil, err
	}
	// Witness set script pool
	witnessScripts := map[ledger.ScriptHash]ledger.PlutusV2Script{}
	for _, script := range tx.Witnesses().PlutusV2Scripts() {
		tmpScript := ledger.PlutusV2Script(script)
		witnessScripts[tmpScript.Hash()] = tmpScript
	}
	// Witness set datum pool
	witnessDatums := map[ledger.DatumHash]*ledger.Datum{}
	for idx := range tx.Witnesses().PlutusData() {
		datum := &tx.Witnesses().PlutusData()[idx]
		witnessDatums[datum.Hash()] = datum
	}
	// Spending scripts can also be provided by reference scripts on inputs
	spendScripts := make(
		map[ledger.ScriptHash]ledger.PlutusV2Script,
		len(witnessScripts),
	)
	for scriptHash, script := range witnessScripts {
		spendScripts[scriptHash] = script
	}
	addV2RefScripts(spendScripts, resolvedInputs)
	addV2RefScripts(spendScripts, resolvedRefInputs)
	var ret []ScriptInvocation
	// Spending invocations
	for idx, input := range tx.Body.Inputs() {
		output := resolvedInputs[idx]
		addr := output.Address()
		payload, ok := addr.PaymentPayload().(ledger.AddressPayloadScriptHash)
		if !ok {
			continue
		}
		redeemer, ok := redeemers[redeemerKey{
			tag:   ledger.RedeemerTagSpend,
			index: uint32(idx), // #nosec G115
		}]
		if !ok {
			return nil, MissingRedeemerError{
				Tag:   ledger.RedeemerTagSpend,
				Index: uint32(idx), // #nosec G115
			}
		}
		script, ok := spendScripts[payload.Hash]
		if !ok {
			return nil, UnsupportedScriptError{Hash: payload.Hash}
		}
		datum := output.Datum()
		if datum == nil {
			datumHash := output.DatumHash()
			if datumHash == nil {
				return nil, MissingDatumError{Input: input}
			}
			datum, ok = witnessDatums[*datumHash]
			if !ok {
				return nil, MissingDatumError{
					Hash:  datumHash,
					Input: input,
				}
			}
		}
		ret = append(
			ret,
			ScriptInvocation{
				Script:   script,
				Datum:    datum,
				Redeemer: redeemer,
				ScriptContext: NewScriptContext(
					txInfo,
					SpendingPurpose(input),
				),
			},
		)
	}
	// Minting invocations
	if mint := tx.Body.Mint(); mint != nil {
		for idx, policyId := range mint.Policies() {
			redeemer, ok := redeemers[redeemerKey{
				tag:   ledger.RedeemerTagMint,
				index: uint32(idx), // #nosec G115
			}]
			if !ok {
				return nil, MissingRedeemerError{
					Tag:   ledger.RedeemerTagMint,
					Index: uint32(idx), // #nosec G115
				}
			}
			script, ok := witnessScripts[policyId]
			if !ok {
				return nil, UnsupportedScriptError{Hash: policyId}
			}
			ret = append(
				ret,
				ScriptInvocation{
					Script:   script,
					Redeemer: redeemer,
					ScriptContext: NewScriptContext(
						txInfo,
						MintingPurpose(policyId),
					),
				},
			)
		}
	}
	return ret, nil
}
