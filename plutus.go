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

// MintingPurpose returns the script purpose for a minting policy invocation
func MintingPurpose(policyId ledger.Blake2b224) data.PlutusData {
	return data.NewConstr(
		0,
		data.NewByteString(policyId.Bytes()),
	)
}

// SpendingPurpose returns the script purpose for a spending invocation
func SpendingPurpose(input ledger.TransactionInput) data.PlutusData {
	return data.NewConstr(
		1,
		input.ToPlutusData(),
	)
}

// NewScriptContext assembles a script context from transaction info and a
// script purpose
func NewScriptContext(
	txInfo data.PlutusData,
	purpose data.PlutusData,
) data.PlutusData {
	return data.NewConstr(
		0,
		txInfo,
		purpose,
	)
}
