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
	"errors"
	"fmt"

	"github.com/blinklabs-io/txeval/cbor"

	"github.com/blinklabs-io/plutigo/data"
)

type DatumHash = Blake2b256

// Datum represents a Plutus datum
type Datum struct {
	cbor.DecodeStoreCbor
	Data data.PlutusData `json:"data"`
}

func NewDatum(pd data.PlutusData) (Datum, error) {
	tmpCbor, err := data.Encode(pd)
	if err != nil {
		return Datum{}, err
	}
	var ret Datum
	if err := ret.UnmarshalCBOR(tmpCbor); err != nil {
		return Datum{}, err
	}
	return ret, nil
}

func (d *Datum) UnmarshalCBOR(cborData []byte) error {
	d.SetCbor(cborData)
	tmpData, err := data.Decode(cborData)
	if err != nil {
		return err
	}
	d.Data = tmpData
	return nil
}

func (d *Datum) MarshalCBOR() ([]byte, error) {
	return data.Encode(d.Data)
}

// Hash returns the Blake2b256 hash of the datum's original CBOR encoding
func (d *Datum) Hash() DatumHash {
	return Blake2b256Hash(d.Cbor())
}

const (
	DatumOptionTypeHash = 0
	DatumOptionTypeData = 1
)

// DatumOption represents the optional datum attached to a transaction output,
// either as a hash or inline
type DatumOption struct {
	hash *DatumHash
	data *Datum
}

func NewDatumOptionHash(hash DatumHash) *DatumOption {
	return &DatumOption{hash: &hash}
}

func NewDatumOptionData(datum Datum) *DatumOption {
	return &DatumOption{data: &datum}
}

func (d *DatumOption) UnmarshalCBOR(cborData []byte) error {
	datumOptionType, err := cbor.DecodeIdFromList(cborData)
	if err != nil {
		return err
	}
	switch datumOptionType {
	case DatumOptionTypeHash:
		var tmpDatumHash struct {
			cbor.StructAsArray
			Type int
			Hash Blake2b256
		}
		if _, err := cbor.Decode(cborData, &tmpDatumHash); err != nil {
			return err
		}
		d.hash = &(tmpDatumHash.Hash)
	case DatumOptionTypeData:
		var tmpDatumData struct {
			cbor.StructAsArray
			Type     int
			DataCbor []byte
		}
		if _, err := cbor.Decode(cborData, &tmpDatumData); err != nil {
			return err
		}
		var datumValue Datum
		if err := datumValue.UnmarshalCBOR(tmpDatumData.DataCbor); err != nil {
			return err
		}
		d.data = &(datumValue)
	default:
		return fmt.Errorf("unsupported datum option type: %d", datumOptionType)
	}
	return nil
}

func (d *DatumOption) MarshalCBOR() ([]byte, error) {
	var tmpObj []any
	if d.hash != nil {
		tmpObj = []any{DatumOptionTypeHash, d.hash}
	} else if d.data != nil {
		tmpObj = []any{
			DatumOptionTypeData,
			cbor.Tag{Number: 24, Content: d.data.Cbor()},
		}
	} else {
		return nil, errors.New("unknown datum option type")
	}
	return cbor.Encode(&tmpObj)
}

// Hash returns the datum hash, or nil for an inline datum
func (d *DatumOption) Hash() *DatumHash {
	if d == nil {
		return nil
	}
	return d.hash
}

// Datum returns the inline datum, or nil for a datum hash
func (d *DatumOption) Datum() *Datum {
	if d == nil {
		return nil
	}
	return d.data
}
