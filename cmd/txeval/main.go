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

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/txeval"
	"github.com/blinklabs-io/txeval/cbor"
	"github.com/blinklabs-io/txeval/ledger"
	"github.com/blinklabs-io/txeval/resolver"
)

type cmdFlags struct {
	txFile   string
	utxoFile string
	ogmios   string
	network  string
	evaluate bool
}

type invocationResult struct {
	Purpose    string         `json:"purpose"`
	ScriptHash string         `json:"scriptHash"`
	Redeemer   redeemerResult `json:"redeemer"`
	Used       *exUnitsResult `json:"usedExUnits,omitempty"`
}

type redeemerResult struct {
	Tag   string `json:"tag"`
	Index uint32 `json:"index"`
}

type exUnitsResult struct {
	Memory int64 `json:"memory"`
	Steps  int64 `json:"steps"`
}

func slotConfigForNetwork(network string) (*txeval.SlotConfig, error) {
	switch network {
	case "mainnet":
		return &txeval.SlotConfigMainnet, nil
	case "preprod":
		return &txeval.SlotConfigPreprod, nil
	case "preview":
		return &txeval.SlotConfigPreview, nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown network: %s", network)
	}
}

func loadUtxoFile(path string) (*resolver.StaticResolver, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Allow hex-encoded UTxO files
	if decoded, err := hex.DecodeString(
		strings.TrimSpace(string(fileBytes)),
	); err == nil {
		fileBytes = decoded
	}
	var tmpUtxos []struct {
		cbor.StructAsArray
		Id     ledger.TransactionInput
		Output ledger.TransactionOutput
	}
	if _, err := cbor.Decode(fileBytes, &tmpUtxos); err != nil {
		return nil, fmt.Errorf("decode UTxO list: %w", err)
	}
	utxos := make([]ledger.Utxo, 0, len(tmpUtxos))
	for _, tmpUtxo := range tmpUtxos {
		utxos = append(
			utxos,
			ledger.Utxo{Id: tmpUtxo.Id, Output: tmpUtxo.Output},
		)
	}
	return resolver.NewStaticResolver(utxos), nil
}

func main() {
	var f cmdFlags
	flag.StringVar(
		&f.txFile,
		"tx-file",
		"",
		"path to the transaction file (raw or hex-encoded CBOR)",
	)
	flag.StringVar(
		&f.utxoFile,
		"utxo-file",
		"",
		"path to a UTxO file (raw or hex-encoded CBOR list of [input, output] pairs) used instead of Ogmios",
	)
	flag.StringVar(
		&f.ogmios,
		"ogmios",
		"ws://localhost:1337",
		"Ogmios endpoint used to resolve transaction inputs",
	)
	flag.StringVar(
		&f.network,
		"network",
		"mainnet",
		"network for slot to time conversion (mainnet/preprod/preview, empty for raw slots)",
	)
	flag.BoolVar(
		&f.evaluate,
		"evaluate",
		false,
		"execute the scripts and report execution units used",
	)
	flag.Parse()
	if f.txFile == "" {
		fmt.Println("ERROR: you must specify a transaction file")
		flag.Usage()
		os.Exit(1)
	}
	txBytes, err := os.ReadFile(f.txFile)
	if err != nil {
		fmt.Printf("ERROR: failed to read transaction file: %s\n", err)
		os.Exit(1)
	}
	// Allow hex-encoded transaction files
	if decoded, err := hex.DecodeString(
		strings.TrimSpace(string(txBytes)),
	); err == nil {
		txBytes = decoded
	}
	tx, err := ledger.NewTransactionFromCbor(txBytes)
	if err != nil {
		fmt.Printf("ERROR: failed to parse transaction: %s\n", err)
		os.Exit(1)
	}
	slotConfig, err := slotConfigForNetwork(f.network)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	var res resolver.Resolver
	if f.utxoFile != "" {
		res, err = loadUtxoFile(f.utxoFile)
		if err != nil {
			fmt.Printf("ERROR: failed to load UTxO file: %s\n", err)
			os.Exit(1)
		}
	} else {
		res = resolver.NewOgmiosResolver(f.ogmios)
	}
	resolvedInputs, err := res.ResolveInputs(ctx, tx.Body.Inputs())
	if err != nil {
		fmt.Printf("ERROR: failed to resolve inputs: %s\n", err)
		os.Exit(1)
	}
	resolvedRefInputs, err := res.ResolveInputs(
		ctx,
		tx.Body.ReferenceInputs(),
	)
	if err != nil {
		fmt.Printf("ERROR: failed to resolve reference inputs: %s\n", err)
		os.Exit(1)
	}
	invocations, err := txeval.GenerateScriptInvocations(
		tx,
		resolvedInputs,
		resolvedRefInputs,
		slotConfig,
	)
	if err != nil {
		fmt.Printf("ERROR: failed to generate script invocations: %s\n", err)
		os.Exit(1)
	}
	var usedExUnits []ledger.ExUnits
	if f.evaluate {
		usedExUnits, err = txeval.EvaluateInvocations(
			txeval.NewCekEvaluator(),
			invocations,
		)
		if err != nil {
			fmt.Printf("ERROR: script evaluation failed: %s\n", err)
			os.Exit(1)
		}
	}
	results := make([]invocationResult, 0, len(invocations))
	for idx, invocation := range invocations {
		tmpResult := invocationResult{
			Purpose:    invocation.Redeemer.Tag.String(),
			ScriptHash: invocation.Script.Hash().String(),
			Redeemer: redeemerResult{
				Tag:   invocation.Redeemer.Tag.String(),
				Index: invocation.Redeemer.Index,
			},
		}
		if usedExUnits != nil {
			tmpResult.Used = &exUnitsResult{
				Memory: usedExUnits[idx].Memory,
				Steps:  usedExUnits[idx].Steps,
			}
		}
		results = append(results, tmpResult)
	}
	output, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Printf("ERROR: failed to generate output: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
}
