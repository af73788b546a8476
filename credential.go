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
	"fmt"
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/txeval/ledger"
)

// PaymentCredential converts an address payment part to script context data
func PaymentCredential(payload ledger.AddressPayload) (data.PlutusData, error) {
	switch p := payload.(type) {
	case ledger.AddressPayloadKeyHash:
		return data.NewConstr(
			0,
			data.NewByteString(p.Hash.Bytes()),
		), nil
	case ledger.AddressPayloadScriptHash:
		return data.NewConstr(
			1,
			data.NewByteString(p.Hash.Bytes()),
		), nil
	default:
		return nil, UnsupportedKeyTypeError{
			KeyType: fmt.Sprintf("%T", payload),
		}
	}
}

// StakingHash converts an address staking part to script context data. It
// rejects payload types that have no staking credential representation
func StakingHash(payload ledger.AddressPayload) (data.PlutusData, error) {
	switch p := payload.(type) {
	case ledger.AddressPayloadKeyHash:
		return data.NewConstr(
			0,
			data.NewConstr(
				0,
				data.NewByteString(p.Hash.Bytes()),
			),
		), nil
	case ledger.AddressPayloadScriptHash:
		return data.NewConstr(
			0,
			data.NewConstr(
				1,
				data.NewByteString(p.Hash.Bytes()),
			),
		), nil
	case ledger.AddressPayloadPointer:
		return data.NewConstr(
			1,
			data.NewInteger(new(big.Int).SetUint64(p.Slot)),
			data.NewInteger(new(big.Int).SetUint64(p.TxIndex)),
			data.NewInteger(new(big.Int).SetUint64(p.CertIndex)),
		), nil
	default:
		return nil, UnsupportedKeyTypeError{
			KeyType: fmt.Sprintf("%T", payload),
		}
	}
}

// StakingCredential converts an optional address staking part to script
// context data. Absent or unrepresentable staking parts map to Nothing
func StakingCredential(payload ledger.AddressPayload) data.PlutusData {
	if payload == nil {
		return data.NewConstr(1)
	}
	tmpHash, err := StakingHash(payload)
	if err != nil {
		return data.NewConstr(1)
	}
	return data.NewConstr(
		0,
		tmpHash,
	)
}

// AddressPlutusData converts an address to its script context representation
func AddressPlutusData(addr ledger.Address) (data.PlutusData, error) {
	paymentPd, err := PaymentCredential(addr.PaymentPayload())
	if err != nil {
		return nil, err
	}
	return data.NewConstr(
		0,
		paymentPd,
		StakingCredential(addr.StakingPayload()),
	), nil
}
