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

package resolver

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	ogmigo "github.com/SundaeSwap-finance/ogmigo/v6"
	"github.com/SundaeSwap-finance/ogmigo/v6/ouroboros/chainsync"
	"github.com/SundaeSwap-finance/ogmigo/v6/ouroboros/shared"
	"github.com/blinklabs-io/txeval/cbor"
	"github.com/blinklabs-io/txeval/ledger"
)

// OgmiosResolver resolves inputs against a cardano-node via the Ogmios
// local state query protocol
type OgmiosResolver struct {
	client *ogmigo.Client
}

func NewOgmiosResolver(endpoint string) *OgmiosResolver {
	return &OgmiosResolver{
		client: ogmigo.New(ogmigo.WithEndpoint(endpoint)),
	}
}

func (r *OgmiosResolver) ResolveInputs(
	ctx context.Context,
	inputs []ledger.TransactionInput,
) ([]ledger.TransactionOutput, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	queries := make([]chainsync.TxInQuery, 0, len(inputs))
	for _, input := range inputs {
		queries = append(
			queries,
			chainsync.TxInQuery{
				Transaction: shared.UtxoTxID{
					ID: input.Id().String(),
				},
				Index: input.Index(),
			},
		)
	}
	utxos, err := r.client.UtxosByTxIn(ctx, queries...)
	if err != nil {
		return nil, err
	}
	// Index results by input, since Ogmios does not guarantee order
	tmpUtxos := make(
		map[ledger.TransactionInput]ledger.TransactionOutput,
		len(utxos),
	)
	for _, utxo := range utxos {
		tmpUtxo, err := convertUtxo(utxo)
		if err != nil {
			return nil, err
		}
		tmpUtxos[tmpUtxo.Id] = tmpUtxo.Output
	}
	ret := make([]ledger.TransactionOutput, 0, len(inputs))
	for _, input := range inputs {
		output, ok := tmpUtxos[input]
		if !ok {
			return nil, fmt.Errorf("unknown input: %s", input.String())
		}
		ret = append(ret, output)
	}
	return ret, nil
}

func convertUtxo(utxo shared.Utxo) (ledger.Utxo, error) {
	address, err := ledger.NewAddress(utxo.Address)
	if err != nil {
		return ledger.Utxo{}, fmt.Errorf("decode address: %w", err)
	}
	assets, err := convertValue(utxo.Value)
	if err != nil {
		return ledger.Utxo{}, err
	}
	output := ledger.TransactionOutput{
		OutputAddress: address,
		OutputAmount: ledger.TransactionOutputValue{
			// #nosec G115
			Amount: uint64(utxo.Value.AdaLovelace().Int64()),
			Assets: assets,
		},
	}
	if utxo.Datum != "" {
		datumCbor, err := hex.DecodeString(utxo.Datum)
		if err != nil {
			return ledger.Utxo{}, fmt.Errorf("decode datum: %w", err)
		}
		var datum ledger.Datum
		if _, err := cbor.Decode(datumCbor, &datum); err != nil {
			return ledger.Utxo{}, fmt.Errorf("decode datum: %w", err)
		}
		output.TxDatumOption = ledger.NewDatumOptionData(datum)
	} else if utxo.DatumHash != "" {
		datumHash, err := hex.DecodeString(utxo.DatumHash)
		if err != nil {
			return ledger.Utxo{}, fmt.Errorf("decode datum hash: %w", err)
		}
		output.TxDatumOption = ledger.NewDatumOptionHash(
			ledger.NewBlake2b256(datumHash),
		)
	}
	if len(utxo.Script) > 0 {
		scriptRef, err := convertScript(utxo.Script)
		if err != nil {
			return ledger.Utxo{}, err
		}
		output.TxScriptRef = scriptRef
	}
	return ledger.Utxo{
		Id: ledger.NewTransactionInput(
			utxo.Transaction.ID,
			int(utxo.Index),
		),
		Output: output,
	}, nil
}

func convertValue(value shared.Value) (*ledger.MultiAsset, error) {
	assets := value.AssetsExceptAda()
	if len(assets) == 0 {
		return nil, nil
	}
	tmpData := make(
		map[ledger.Blake2b224]map[cbor.ByteString]*big.Int,
		len(assets),
	)
	for policyId, policyAssets := range assets {
		policyBytes, err := hex.DecodeString(policyId)
		if err != nil {
			return nil, fmt.Errorf("decode policy ID: %w", err)
		}
		tmpPolicy := make(
			map[cbor.ByteString]*big.Int,
			len(policyAssets),
		)
		for assetName, amount := range policyAssets {
			nameBytes, err := hex.DecodeString(assetName)
			if err != nil {
				return nil, fmt.Errorf("decode asset name: %w", err)
			}
			tmpPolicy[cbor.NewByteString(nameBytes)] = amount.BigInt()
		}
		tmpData[ledger.NewBlake2b224(policyBytes)] = tmpPolicy
	}
	ret := ledger.NewMultiAsset(tmpData)
	return &ret, nil
}

func convertScript(rawScript json.RawMessage) (*ledger.ScriptRef, error) {
	var tmpScript struct {
		Language string `json:"language"`
		Cbor     string `json:"cbor"`
	}
	if err := json.Unmarshal(rawScript, &tmpScript); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	scriptBytes, err := hex.DecodeString(tmpScript.Cbor)
	if err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	switch tmpScript.Language {
	case "plutus:v1":
		tmpV1 := ledger.PlutusV1Script(scriptBytes)
		return &ledger.ScriptRef{
			Type:   ledger.ScriptRefTypePlutusV1,
			Script: &tmpV1,
		}, nil
	case "plutus:v2":
		tmpV2 := ledger.PlutusV2Script(scriptBytes)
		return &ledger.ScriptRef{
			Type:   ledger.ScriptRefTypePlutusV2,
			Script: &tmpV2,
		}, nil
	case "plutus:v3":
		tmpV3 := ledger.PlutusV3Script(scriptBytes)
		return &ledger.ScriptRef{
			Type:   ledger.ScriptRefTypePlutusV3,
			Script: &tmpV3,
		}, nil
	default:
		// Native scripts cannot be executed here and are not needed for
		// script resolution
		return nil, nil
	}
}
