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
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/ledger"
)

// adaPair builds the lovelace entry of a Value: the empty policy ID mapped
// to the empty asset name mapped to the coin amount
func adaPair(coin *big.Int) [2]data.PlutusData {
	return [2]data.PlutusData{
		data.NewByteString(nil),
		data.NewMap(
			[][2]data.PlutusData{
				{
					data.NewByteString(nil),
					data.NewInteger(coin),
				},
			},
		),
	}
}

func multiAssetValuePairs(assets *ledger.MultiAsset) [][2]data.PlutusData {
	tmpMap, ok := assets.ToPlutusData().(*data.Map)
	if !ok {
		return nil
	}
	return tmpMap.Pairs
}

// ValueFromMintAssets returns the script context Value for a transaction's
// mint field. A nil mint yields a Value with a single zero-lovelace entry,
// a populated mint yields only the native asset entries
func ValueFromMintAssets(assets *ledger.MultiAsset) data.PlutusData {
	if assets == nil {
		return data.NewMap(
			[][2]data.PlutusData{
				adaPair(big.NewInt(0)),
			},
		)
	}
	return data.NewMap(multiAssetValuePairs(assets))
}

// ValueFromAmount returns the script context Value for a coin amount plus
// optional native assets. The lovelace entry comes after the asset entries
func ValueFromAmount(coin uint64, assets *ledger.MultiAsset) data.PlutusData {
	var tmpPairs [][2]data.PlutusData
	if assets != nil {
		tmpPairs = multiAssetValuePairs(assets)
	}
	tmpPairs = append(
		tmpPairs,
		adaPair(new(big.Int).SetUint64(coin)),
	)
	return data.NewMap(tmpPairs)
}
