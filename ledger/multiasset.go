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

package ledger

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/blinklabs-io/txeval/cbor"

	"github.com/blinklabs-io/plutigo/data"
)

// MultiAsset represents a collection of policies, assets, and quantities. It's
// used for both TX outputs and TX asset minting, where negative quantities
// represent burning
type MultiAsset struct {
	data map[Blake2b224]map[cbor.ByteString]*big.Int
}

// NewMultiAsset creates a MultiAsset with the specified data
func NewMultiAsset(
	data map[Blake2b224]map[cbor.ByteString]*big.Int,
) MultiAsset {
	if data == nil {
		data = make(map[Blake2b224]map[cbor.ByteString]*big.Int)
	}
	return MultiAsset{data: data}
}

func (m *MultiAsset) UnmarshalCBOR(data []byte) error {
	_, err := cbor.Decode(data, &(m.data))
	return err
}

func (m *MultiAsset) MarshalCBOR() ([]byte, error) {
	// The CBOR library is configured with SortCoreDeterministic, so direct
	// encoding of the map produces deterministic output without manual sorting
	return cbor.Encode(m.data)
}

// multiAssetJson is a convenience type for marshaling MultiAsset to JSON
type multiAssetJson struct {
	Name        string `json:"name"`
	NameHex     string `json:"nameHex"`
	PolicyId    string `json:"policyId"`
	Fingerprint string `json:"fingerprint"`
	Amount      string `json:"amount"`
}

func (m MultiAsset) MarshalJSON() ([]byte, error) {
	tmpAssets := make([]multiAssetJson, 0, len(m.data))
	for policyId, policyData := range m.data {
		for assetName, amount := range policyData {
			tmpObj := multiAssetJson{
				Name:     string(assetName.Bytes()),
				NameHex:  hex.EncodeToString(assetName.Bytes()),
				Amount:   amountString(amount),
				PolicyId: policyId.String(),
				Fingerprint: NewAssetFingerprint(
					policyId.Bytes(),
					assetName.Bytes(),
				).String(),
			}
			tmpAssets = append(tmpAssets, tmpObj)
		}
	}
	return json.Marshal(&tmpAssets)
}

func (m *MultiAsset) ToPlutusData() data.PlutusData {
	tmpData := make([][2]data.PlutusData, 0, len(m.data))
	for _, policyId := range m.Policies() {
		policyData := m.data[policyId]
		tmpPolicyData := make([][2]data.PlutusData, 0, len(policyData))
		// Sort asset names
		assetKeys := slices.Collect(maps.Keys(policyData))
		slices.SortFunc(
			assetKeys,
			func(a, b cbor.ByteString) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
		)
		for _, assetName := range assetKeys {
			amount := policyData[assetName]
			tmpPolicyData = append(
				tmpPolicyData,
				[2]data.PlutusData{
					data.NewByteString(assetName.Bytes()),
					data.NewInteger(amountBigInt(amount)),
				},
			)
		}
		tmpData = append(
			tmpData,
			[2]data.PlutusData{
				data.NewByteString(policyId.Bytes()),
				data.NewMap(tmpPolicyData),
			},
		)
	}
	return data.NewMap(tmpData)
}

// Policies returns the policy IDs in the MultiAsset, sorted lexicographically
func (m *MultiAsset) Policies() []Blake2b224 {
	ret := slices.Collect(maps.Keys(m.data))
	slices.SortFunc(
		ret,
		func(a, b Blake2b224) int { return bytes.Compare(a.Bytes(), b.Bytes()) },
	)
	return ret
}

// Assets returns the asset names for a policy ID, sorted lexicographically
func (m *MultiAsset) Assets(policyId Blake2b224) [][]byte {
	assets, ok := m.data[policyId]
	if !ok {
		return nil
	}
	ret := make([][]byte, 0, len(assets))
	for assetName := range assets {
		ret = append(ret, assetName.Bytes())
	}
	slices.SortFunc(ret, bytes.Compare)
	return ret
}

func (m *MultiAsset) Asset(policyId Blake2b224, assetName []byte) *big.Int {
	policy, ok := m.data[policyId]
	if !ok {
		return nil
	}
	return policy[cbor.NewByteString(assetName)]
}

// String returns a stable, human-friendly representation of the MultiAsset.
// Output format: [<policyId>.<assetNameHex>=<amount>, ...] sorted by policyId,
// then asset name
func (m *MultiAsset) String() string {
	if m == nil || len(m.data) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for _, policyId := range m.Policies() {
		for _, assetName := range m.Assets(policyId) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(policyId.String())
			b.WriteByte('.')
			b.WriteString(hex.EncodeToString(assetName))
			b.WriteByte('=')
			b.WriteString(amountString(m.Asset(policyId, assetName)))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func amountString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}

func amountBigInt(a *big.Int) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a)
}
