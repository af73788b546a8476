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
	"errors"
	"reflect"
	"testing"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/cbor"
	"github.com/blinklabs-io/txeval/ledger"
)

func TestBuildTxInfoStructure(t *testing.T) {
	input := ledger.NewTransactionInput(testTxIdHex, 0)
	datum := testDatum(t, 42)
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: ledger.NewTransactionInputSet(
				[]ledger.TransactionInput{input},
			),
			TxOutputs: []ledger.TransactionOutput{
				{
					OutputAddress: testPubkeyAddress(t),
					OutputAmount: ledger.TransactionOutputValue{
						Amount: 4000000,
					},
				},
			},
			TxFee: 200000,
		},
		WitnessSet: ledger.WitnessSet{
			WsPlutusData: []ledger.Datum{datum},
			WsRedeemers: ledger.Redeemers{
				testSpendRedeemer(t, 0),
			},
		},
	}
	resolvedInputs := []ledger.TransactionOutput{
		{
			OutputAddress: testPubkeyAddress(t),
			OutputAmount: ledger.TransactionOutputValue{
				Amount: 5000000,
			},
		},
	}
	txInfoPd, err := BuildTxInfo(tx, resolvedInputs, nil, nil)
	if err != nil {
		t.Fatalf("failure building tx info: %s", err)
	}
	txInfo, ok := txInfoPd.(*data.Constr)
	if !ok {
		t.Fatalf("unexpected PlutusData type")
	}
	if txInfo.Tag != 0 {
		t.Fatalf("unexpected constructor tag: %d", txInfo.Tag)
	}
	if len(txInfo.Fields) != 12 {
		t.Fatalf("unexpected field count: %d", len(txInfo.Fields))
	}
	// Fee
	expectedFee := ValueFromAmount(200000, nil)
	if !reflect.DeepEqual(txInfo.Fields[3], expectedFee) {
		t.Fatalf(
			"fee did not match expected value, got: %#v, wanted: %#v",
			txInfo.Fields[3],
			expectedFee,
		)
	}
	// Certificates are always empty
	if !reflect.DeepEqual(txInfo.Fields[5], data.NewList()) {
		t.Fatalf("expected empty certificate list")
	}
	// Datum table carries the witness set datum keyed by hash
	datumHash := datum.Hash()
	expectedDatums := data.NewMap(
		[][2]data.PlutusData{
			{
				data.NewByteString(datumHash.Bytes()),
				datum.Data,
			},
		},
	)
	if !reflect.DeepEqual(txInfo.Fields[9], expectedDatums) {
		t.Fatalf(
			"datum table did not match expected value, got: %#v, wanted: %#v",
			txInfo.Fields[9],
			expectedDatums,
		)
	}
	// Redeemer table is keyed by redeemer content hash
	redeemer := tx.WitnessSet.WsRedeemers[0]
	redeemerHash := redeemer.Hash()
	expectedRedeemers := data.NewMap(
		[][2]data.PlutusData{
			{
				data.NewByteString(redeemerHash.Bytes()),
				redeemer.ToPlutusData(),
			},
		},
	)
	if !reflect.DeepEqual(txInfo.Fields[10], expectedRedeemers) {
		t.Fatalf(
			"redeemer table did not match expected value, got: %#v, wanted: %#v",
			txInfo.Fields[10],
			expectedRedeemers,
		)
	}
	// Transaction ID
	txId := tx.Hash()
	expectedTxId := data.NewConstr(
		0,
		data.NewByteString(txId.Bytes()),
	)
	if !reflect.DeepEqual(txInfo.Fields[11], expectedTxId) {
		t.Fatalf(
			"tx ID did not match expected value, got: %#v, wanted: %#v",
			txInfo.Fields[11],
			expectedTxId,
		)
	}
}

func TestBuildTxInfoDatumTableDedup(t *testing.T) {
	input := ledger.NewTransactionInput(testTxIdHex, 0)
	datum := testDatum(t, 42)
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: ledger.NewTransactionInputSet(
				[]ledger.TransactionInput{input},
			),
			TxOutputs: []ledger.TransactionOutput{
				{
					OutputAddress: testPubkeyAddress(t),
					OutputAmount: ledger.TransactionOutputValue{
						Amount: 4000000,
					},
					TxDatumOption: ledger.NewDatumOptionData(datum),
				},
			},
		},
		WitnessSet: ledger.WitnessSet{
			// Same datum again via the witness set
			WsPlutusData: []ledger.Datum{datum},
		},
	}
	resolvedInputs := []ledger.TransactionOutput{
		{
			OutputAddress: testPubkeyAddress(t),
			OutputAmount: ledger.TransactionOutputValue{
				Amount: 5000000,
			},
		},
	}
	txInfoPd, err := BuildTxInfo(tx, resolvedInputs, nil, nil)
	if err != nil {
		t.Fatalf("failure building tx info: %s", err)
	}
	txInfo := txInfoPd.(*data.Constr)
	datumTable, ok := txInfo.Fields[9].(*data.Map)
	if !ok {
		t.Fatalf("unexpected datum table type")
	}
	if len(datumTable.Pairs) != 1 {
		t.Fatalf(
			"unexpected datum table entry count: %d",
			len(datumTable.Pairs),
		)
	}
}

func TestBuildTxInfoRejectsCertificates(t *testing.T) {
	input := ledger.NewTransactionInput(testTxIdHex, 0)
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: ledger.NewTransactionInputSet(
				[]ledger.TransactionInput{input},
			),
			TxCertificates: []cbor.RawMessage{
				cbor.RawMessage{0x82, 0x00, 0x00},
			},
		},
	}
	resolvedInputs := []ledger.TransactionOutput{
		{
			OutputAddress: testPubkeyAddress(t),
			OutputAmount: ledger.TransactionOutputValue{
				Amount: 5000000,
			},
		},
	}
	_, err := BuildTxInfo(tx, resolvedInputs, nil, nil)
	var certErr CertificatesUnsupportedError
	if !errors.As(err, &certErr) {
		t.Fatalf("expected CertificatesUnsupportedError, got: %v", err)
	}
	if certErr.Count != 1 {
		t.Fatalf("unexpected certificate count: %d", certErr.Count)
	}
}

func TestBuildTxInfoInputCountMismatch(t *testing.T) {
	input := ledger.NewTransactionInput(testTxIdHex, 0)
	tx := &ledger.Transaction{
		Body: ledger.TransactionBody{
			TxInputs: ledger.NewTransactionInputSet(
				[]ledger.TransactionInput{input},
			),
		},
	}
	if _, err := BuildTxInfo(tx, nil, nil, nil); err == nil {
		t.Fatalf("expected error for missing resolved inputs")
	}
}
