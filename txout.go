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

// TxOutPlutusData converts a transaction output to its script context
// representation. An inline datum takes precedence over a datum hash
func TxOutPlutusData(output ledger.TransactionOutput) (data.PlutusData, error) {
	addressPd, err := AddressPlutusData(output.Address())
	if err != nil {
		return nil, err
	}
	// Output datum
	datumPd := data.NewConstr(0)
	if datum := output.Datum(); datum != nil {
		datumPd = data.NewConstr(
			2,
			datum.Data,
		)
	} else if datumHash := output.DatumHash(); datumHash != nil {
		datumPd = data.NewConstr(
			1,
			data.NewByteString(datumHash.Bytes()),
		)
	}
	// Reference script
	scriptRefPd := data.NewConstr(1)
	if scriptRef := output.ScriptRef(); scriptRef != nil {
		scriptHash := scriptRef.Script.Hash()
		scriptRefPd = data.NewConstr(
			0,
			data.NewByteString(scriptHash.Bytes()),
		)
	}
	return data.NewConstr(
		0,
		addressPd,
		ValueFromAmount(output.Amount(), output.Assets()),
		datumPd,
		scriptRefPd,
	), nil
}

// TxInInfoPlutusData converts a resolved input to its script context
// representation
func TxInInfoPlutusData(
	input ledger.TransactionInput,
	output ledger.TransactionOutput,
) (data.PlutusData, error) {
	outputPd, err := TxOutPlutusData(output)
	if err != nil {
		return nil, err
	}
	return data.NewConstr(
		0,
		input.ToPlutusData(),
		outputPd,
	), nil
}
