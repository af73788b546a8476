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
	"math/big"
	"reflect"
	"testing"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/cbor"
	"github.com/blinklabs-io/txeval/internal/test"
)

const testTxIdHex = "3b40265111d8bb3c3c608d95b3a0bf83461ace32d79336579a1939b3aad1c0b7"

func TestTransactionInputToPlutusData(t *testing.T) {
	input := NewTransactionInput(testTxIdHex, 2)
	expected := data.NewConstr(
		0,
		data.NewConstr(
			0,
			data.NewByteString(test.DecodeHexString(testTxIdHex)),
		),
		data.NewInteger(big.NewInt(2)),
	)
	if !reflect.DeepEqual(input.ToPlutusData(), expected) {
		t.Fatalf(
			"did not get expected PlutusData, got: %#v, wanted: %#v",
			input.ToPlutusData(),
			expected,
		)
	}
}

func TestTransactionInputSetUnmarshal(t *testing.T) {
	testDefs := []struct {
		cborHex string
	}{
		// Plain list
		{
			cborHex: "81825820" + testTxIdHex + "00",
		},
		// Tagged set (tag 258)
		{
			cborHex: "d9010281825820" + testTxIdHex + "00",
		},
	}
	for _, testDef := range testDefs {
		var tmpSet TransactionInputSet
		if _, err := cbor.Decode(
			test.DecodeHexString(testDef.cborHex),
			&tmpSet,
		); err != nil {
			t.Fatalf("failure decoding input set: %s", err)
		}
		items := tmpSet.Items()
		if len(items) != 1 {
			t.Fatalf("unexpected input count: %d", len(items))
		}
		if items[0].Id().String() != testTxIdHex {
			t.Fatalf(
				"input ID did not match expected value, got: %s",
				items[0].Id().String(),
			)
		}
		if items[0].Index() != 0 {
			t.Fatalf("unexpected input index: %d", items[0].Index())
		}
	}
}

func TestTransactionOutputUnmarshalLegacy(t *testing.T) {
	outputCbor := test.DecodeHexString(
		"82581d61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b1a000f4240",
	)
	var output TransactionOutput
	if _, err := cbor.Decode(outputCbor, &output); err != nil {
		t.Fatalf("failure decoding output: %s", err)
	}
	if output.Amount() != 1000000 {
		t.Fatalf("unexpected output amount: %d", output.Amount())
	}
	expectedAddress := "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k"
	if output.Address().String() != expectedAddress {
		t.Fatalf(
			"address did not match expected value, got: %s, wanted: %s",
			output.Address().String(),
			expectedAddress,
		)
	}
	if output.Datum() != nil || output.DatumHash() != nil {
		t.Fatalf("unexpected datum on legacy output")
	}
	// Re-encode and compare against the original CBOR
	reencoded, err := cbor.Encode(&output)
	if err != nil {
		t.Fatalf("failure encoding output: %s", err)
	}
	if !reflect.DeepEqual(reencoded, outputCbor) {
		t.Fatalf(
			"did not get expected CBOR, got: %x, wanted: %x",
			reencoded,
			outputCbor,
		)
	}
}

func TestTransactionOutputUnmarshalInlineDatum(t *testing.T) {
	outputCbor := test.DecodeHexString(
		"a300581d61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b011a000f4240028201d81842182a",
	)
	var output TransactionOutput
	if _, err := cbor.Decode(outputCbor, &output); err != nil {
		t.Fatalf("failure decoding output: %s", err)
	}
	if output.Amount() != 1000000 {
		t.Fatalf("unexpected output amount: %d", output.Amount())
	}
	datum := output.Datum()
	if datum == nil {
		t.Fatalf("expected inline datum")
	}
	expectedDatum := data.NewInteger(big.NewInt(42))
	if !reflect.DeepEqual(datum.Data, expectedDatum) {
		t.Fatalf(
			"datum did not match expected value, got: %#v, wanted: %#v",
			datum.Data,
			expectedDatum,
		)
	}
}

func TestRedeemerToPlutusData(t *testing.T) {
	datum, err := NewDatum(data.NewInteger(big.NewInt(7)))
	if err != nil {
		t.Fatalf("failure creating datum: %s", err)
	}
	redeemer := Redeemer{
		Tag:   RedeemerTagSpend,
		Index: 2,
		Data:  datum,
		ExUnits: ExUnits{
			Memory: 1000,
			Steps:  2000,
		},
	}
	expected := data.NewList(
		data.NewInteger(big.NewInt(0)),
		data.NewInteger(big.NewInt(2)),
		data.NewInteger(big.NewInt(7)),
		data.NewList(
			data.NewInteger(big.NewInt(1000)),
			data.NewInteger(big.NewInt(2000)),
		),
	)
	if !reflect.DeepEqual(redeemer.ToPlutusData(), expected) {
		t.Fatalf(
			"did not get expected PlutusData, got: %#v, wanted: %#v",
			redeemer.ToPlutusData(),
			expected,
		)
	}
}

func TestDatumHash(t *testing.T) {
	datum, err := NewDatum(data.NewInteger(big.NewInt(42)))
	if err != nil {
		t.Fatalf("failure creating datum: %s", err)
	}
	// blake2b-256 of the CBOR encoding of 42
	expectedHash := "9e1199a988ba72ffd6e9c269cadb3b53b5f360ff99f112d9b2ee30c4d74ad88b"
	if datum.Hash().String() != expectedHash {
		t.Fatalf(
			"datum hash did not match expected value, got: %s, wanted: %s",
			datum.Hash().String(),
			expectedHash,
		)
	}
}
