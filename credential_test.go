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
	"math/big"
	"reflect"
	"testing"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/internal/test"
	"github.com/blinklabs-io/txeval/ledger"
)

const (
	testPaymentScriptHashHex = "e1317b152faac13426e6a83e06ff88a4d62cce3c1634ab0a5ec13309"
	testStakeKeyHashHex      = "52563c5410bff6a0d43ccebb7c37e1f69f5eb260552521adff33b9c2"
)

func TestAddressPlutusData(t *testing.T) {
	// Script payment part with key staking part
	addr, err := ledger.NewAddress(
		"addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
	)
	if err != nil {
		t.Fatalf("failure decoding address: %s", err)
	}
	result, err := AddressPlutusData(addr)
	if err != nil {
		t.Fatalf("failure converting address: %s", err)
	}
	expected := data.NewConstr(
		0,
		data.NewConstr(
			1,
			data.NewByteString(
				test.DecodeHexString(testPaymentScriptHashHex),
			),
		),
		data.NewConstr(
			0,
			data.NewConstr(
				0,
				data.NewConstr(
					0,
					data.NewByteString(
						test.DecodeHexString(testStakeKeyHashHex),
					),
				),
			),
		),
	)
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf(
			"did not get expected PlutusData, got: %#v, wanted: %#v",
			result,
			expected,
		)
	}
}

func TestAddressPlutusDataEnterprise(t *testing.T) {
	addr, err := ledger.NewAddress(
		"addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
	)
	if err != nil {
		t.Fatalf("failure decoding address: %s", err)
	}
	result, err := AddressPlutusData(addr)
	if err != nil {
		t.Fatalf("failure converting address: %s", err)
	}
	expected := data.NewConstr(
		0,
		data.NewConstr(
			0,
			data.NewByteString(
				test.DecodeHexString(
					"cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
				),
			),
		),
		data.NewConstr(1),
	)
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf(
			"did not get expected PlutusData, got: %#v, wanted: %#v",
			result,
			expected,
		)
	}
}

func TestAddressPlutusDataPointer(t *testing.T) {
	addrBytes := []byte{
		0x41, // key payment part with pointer staking part, mainnet
	}
	addrBytes = append(
		addrBytes,
		test.DecodeHexString(
			"3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518",
		)...,
	)
	// Pointer (42, 1, 2)
	addrBytes = append(addrBytes, 0x2a, 0x01, 0x02)
	addr, err := ledger.NewAddressFromBytes(addrBytes)
	if err != nil {
		t.Fatalf("failure decoding address: %s", err)
	}
	result, err := AddressPlutusData(addr)
	if err != nil {
		t.Fatalf("failure converting address: %s", err)
	}
	expected := data.NewConstr(
		0,
		data.NewConstr(
			0,
			data.NewByteString(
				test.DecodeHexString(
					"3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518",
				),
			),
		),
		data.NewConstr(
			0,
			data.NewConstr(
				1,
				data.NewInteger(big.NewInt(42)),
				data.NewInteger(big.NewInt(1)),
				data.NewInteger(big.NewInt(2)),
			),
		),
	)
	if !reflect.DeepEqual(result, expected) {
		t.Fatalf(
			"did not get expected PlutusData, got: %#v, wanted: %#v",
			result,
			expected,
		)
	}
}

func TestPaymentCredentialByron(t *testing.T) {
	addr, err := ledger.NewAddress(
		"DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
	)
	if err != nil {
		t.Fatalf("failure decoding address: %s", err)
	}
	_, err = PaymentCredential(addr.PaymentPayload())
	var keyTypeErr UnsupportedKeyTypeError
	if !errors.As(err, &keyTypeErr) {
		t.Fatalf("expected UnsupportedKeyTypeError, got: %v", err)
	}
}

func TestStakingHashRejectsMissing(t *testing.T) {
	_, err := StakingHash(nil)
	var keyTypeErr UnsupportedKeyTypeError
	if !errors.As(err, &keyTypeErr) {
		t.Fatalf("expected UnsupportedKeyTypeError, got: %v", err)
	}
}
