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

package cbor_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/txeval/cbor"
)

var testDefs = []struct {
	cborHex string
	object  any
}{
	{
		cborHex: "820102",
		object:  []any{uint64(1), uint64(2)},
	},
	{
		cborHex: "a1616b6176",
		object:  map[string]string{"k": "v"},
	},
	{
		cborHex: "6474657374",
		object:  "test",
	},
}

func TestEncode(t *testing.T) {
	for _, testDef := range testDefs {
		cborData, err := cbor.Encode(testDef.object)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != testDef.cborHex {
			t.Fatalf(
				"object did not encode to expected CBOR\n  got:    %s\n  wanted: %s",
				cborHex,
				testDef.cborHex,
			)
		}
	}
}

func TestEncodeMapDeterministic(t *testing.T) {
	// Map keys must be sorted in the encoded output regardless of
	// insertion order
	testObject := map[uint64]uint64{3: 1, 1: 1, 2: 1}
	expectedCborHex := "a3010102010301"
	for range 10 {
		cborData, err := cbor.Encode(testObject)
		if err != nil {
			t.Fatalf("failed to encode object to CBOR: %s", err)
		}
		cborHex := hex.EncodeToString(cborData)
		if cborHex != expectedCborHex {
			t.Fatalf(
				"map did not encode to expected CBOR\n  got:    %s\n  wanted: %s",
				cborHex,
				expectedCborHex,
			)
		}
	}
}

func TestDecodeIdFromList(t *testing.T) {
	testDefs := []struct {
		cborHex    string
		expectedId int
	}{
		{
			cborHex:    "820102",
			expectedId: 1,
		},
		{
			cborHex:    "83021864a0",
			expectedId: 2,
		},
		{
			// List with an ID larger than the max simple uint
			cborHex:    "821864a0",
			expectedId: 100,
		},
	}
	for _, testDef := range testDefs {
		cborData, err := hex.DecodeString(testDef.cborHex)
		if err != nil {
			t.Fatalf("unexpected error decoding hex: %s", err)
		}
		tmpId, err := cbor.DecodeIdFromList(cborData)
		if err != nil {
			t.Fatalf("failed to decode ID from list: %s", err)
		}
		if tmpId != testDef.expectedId {
			t.Fatalf(
				"did not decode expected ID from list\n  got:    %d\n  wanted: %d",
				tmpId,
				testDef.expectedId,
			)
		}
	}
}

func TestDecodeIdFromListFailure(t *testing.T) {
	testDefs := []struct {
		cborHex string
	}{
		// Empty data
		{cborHex: ""},
		// Empty list
		{cborHex: "80"},
		// Not a list
		{cborHex: "01"},
	}
	for _, testDef := range testDefs {
		cborData, err := hex.DecodeString(testDef.cborHex)
		if err != nil {
			t.Fatalf("unexpected error decoding hex: %s", err)
		}
		if _, err := cbor.DecodeIdFromList(cborData); err == nil {
			t.Fatalf(
				"did not get expected error for CBOR: %s",
				testDef.cborHex,
			)
		}
	}
}

func TestListLength(t *testing.T) {
	cborData, err := hex.DecodeString("83010203")
	if err != nil {
		t.Fatalf("unexpected error decoding hex: %s", err)
	}
	length, err := cbor.ListLength(cborData)
	if err != nil {
		t.Fatalf("failed to determine list length: %s", err)
	}
	if length != 3 {
		t.Fatalf(
			"did not get expected list length\n  got:    %d\n  wanted: %d",
			length,
			3,
		)
	}
}

func TestByteStringRoundTrip(t *testing.T) {
	testData := []byte{0xde, 0xad, 0xbe, 0xef}
	bs := cbor.NewByteString(testData)
	cborData, err := cbor.Encode(bs)
	if err != nil {
		t.Fatalf("failed to encode ByteString to CBOR: %s", err)
	}
	var bs2 cbor.ByteString
	if _, err := cbor.Decode(cborData, &bs2); err != nil {
		t.Fatalf("failed to decode ByteString from CBOR: %s", err)
	}
	if bs2.String() != "deadbeef" {
		t.Fatalf(
			"did not get expected ByteString value\n  got:    %s\n  wanted: %s",
			bs2.String(),
			"deadbeef",
		)
	}
}
