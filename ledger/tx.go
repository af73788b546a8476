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
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/blinklabs-io/txeval/cbor"

	"github.com/blinklabs-io/plutigo/data"
)

type RedeemerTag uint8

const (
	RedeemerTagSpend  RedeemerTag = 0
	RedeemerTagMint   RedeemerTag = 1
	RedeemerTagCert   RedeemerTag = 2
	RedeemerTagReward RedeemerTag = 3
)

func (t RedeemerTag) String() string {
	switch t {
	case RedeemerTagSpend:
		return "spend"
	case RedeemerTagMint:
		return "mint"
	case RedeemerTagCert:
		return "cert"
	case RedeemerTagReward:
		return "reward"
	default:
		return fmt.Sprintf("unknown (%d)", uint8(t))
	}
}

type TransactionInput struct {
	cbor.StructAsArray
	TxId        Blake2b256
	OutputIndex uint32
}

func NewTransactionInput(hash string, idx int) TransactionInput {
	tmpHash, err := hex.DecodeString(hash)
	if err != nil {
		panic(fmt.Sprintf("failed to decode transaction hash: %s", err))
	}
	if idx < 0 || idx > math.MaxUint32 {
		panic("index out of range")
	}
	return TransactionInput{
		TxId:        NewBlake2b256(tmpHash),
		OutputIndex: uint32(idx),
	}
}

func (i TransactionInput) Id() Blake2b256 {
	return i.TxId
}

func (i TransactionInput) Index() uint32 {
	return i.OutputIndex
}

// ToPlutusData returns the output reference in the shape scripts receive it,
// with the transaction ID wrapped in its own constructor
func (i TransactionInput) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		data.NewConstr(
			0,
			data.NewByteString(i.TxId.Bytes()),
		),
		data.NewInteger(big.NewInt(int64(i.OutputIndex))),
	)
}

func (i TransactionInput) String() string {
	return fmt.Sprintf("%s#%d", i.TxId, i.OutputIndex)
}

func (i TransactionInput) MarshalJSON() ([]byte, error) {
	return []byte("\"" + i.String() + "\""), nil
}

type TransactionInputSet struct {
	items []TransactionInput
}

func NewTransactionInputSet(
	items []TransactionInput,
) TransactionInputSet {
	s := TransactionInputSet{
		items: items,
	}
	return s
}

func (s *TransactionInputSet) UnmarshalCBOR(cborData []byte) error {
	// Unwrap a tag-wrapped set
	var tmpTag cbor.RawTag
	if _, err := cbor.Decode(cborData, &tmpTag); err == nil {
		if tmpTag.Number != cbor.CborTagSet {
			return fmt.Errorf("unexpected tag number: %d", tmpTag.Number)
		}
		cborData = []byte(tmpTag.Content)
	}
	var tmpData []TransactionInput
	if _, err := cbor.Decode(cborData, &tmpData); err != nil {
		return err
	}
	s.items = tmpData
	return nil
}

func (s *TransactionInputSet) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(s.items)
}

func (s *TransactionInputSet) Items() []TransactionInput {
	return s.items
}

type TransactionOutputValue struct {
	cbor.StructAsArray
	Amount uint64
	// We use a pointer here to allow it to be nil
	Assets *MultiAsset
}

func (v *TransactionOutputValue) UnmarshalCBOR(data []byte) error {
	if _, err := cbor.Decode(data, &(v.Amount)); err == nil {
		return nil
	}
	return cbor.DecodeGeneric(data, v)
}

func (v *TransactionOutputValue) MarshalCBOR() ([]byte, error) {
	if v.Assets == nil {
		return cbor.Encode(v.Amount)
	}
	return cbor.EncodeGeneric(v)
}

type TransactionOutput struct {
	cbor.DecodeStoreCbor
	OutputAddress Address                `cbor:"0,keyasint,omitempty"`
	OutputAmount  TransactionOutputValue `cbor:"1,keyasint,omitempty"`
	TxDatumOption *DatumOption           `cbor:"2,keyasint,omitempty"`
	TxScriptRef   *ScriptRef             `cbor:"3,keyasint,omitempty"`
	legacyOutput  bool
}

// legacy pre-Babbage output shapes: [address, amount] or
// [address, amount, datum_hash]
type legacyTransactionOutput struct {
	cbor.StructAsArray
	OutputAddress Address
	OutputAmount  TransactionOutputValue
}

type legacyTransactionOutputWithDatum struct {
	cbor.StructAsArray
	OutputAddress Address
	OutputAmount  TransactionOutputValue
	TxDatumHash   Blake2b256
}

func (o *TransactionOutput) UnmarshalCBOR(cborData []byte) error {
	// Save original CBOR
	o.SetCbor(cborData)
	if len(cborData) == 0 {
		return errors.New("empty output data")
	}
	// Modern outputs are a map, legacy outputs are an array
	if cborData[0]&cbor.CborTypeMask != cbor.CborTypeArray {
		return cbor.DecodeGeneric(cborData, o)
	}
	listLen, err := cbor.ListLength(cborData)
	if err != nil {
		return err
	}
	switch listLen {
	case 2:
		var tmpOutput legacyTransactionOutput
		if _, err := cbor.Decode(cborData, &tmpOutput); err != nil {
			return err
		}
		o.OutputAddress = tmpOutput.OutputAddress
		o.OutputAmount = tmpOutput.OutputAmount
	case 3:
		var tmpOutput legacyTransactionOutputWithDatum
		if _, err := cbor.Decode(cborData, &tmpOutput); err != nil {
			return err
		}
		o.OutputAddress = tmpOutput.OutputAddress
		o.OutputAmount = tmpOutput.OutputAmount
		o.TxDatumOption = NewDatumOptionHash(tmpOutput.TxDatumHash)
	default:
		return fmt.Errorf("unexpected legacy output length: %d", listLen)
	}
	o.legacyOutput = true
	return nil
}

func (o *TransactionOutput) MarshalCBOR() ([]byte, error) {
	if o.legacyOutput {
		if datumHash := o.DatumHash(); datumHash != nil {
			tmpOutput := legacyTransactionOutputWithDatum{
				OutputAddress: o.OutputAddress,
				OutputAmount:  o.OutputAmount,
				TxDatumHash:   *datumHash,
			}
			return cbor.Encode(&tmpOutput)
		}
		tmpOutput := legacyTransactionOutput{
			OutputAddress: o.OutputAddress,
			OutputAmount:  o.OutputAmount,
		}
		return cbor.Encode(&tmpOutput)
	}
	return cbor.EncodeGeneric(o)
}

func (o TransactionOutput) Address() Address {
	return o.OutputAddress
}

func (o TransactionOutput) Amount() uint64 {
	return o.OutputAmount.Amount
}

func (o TransactionOutput) Assets() *MultiAsset {
	return o.OutputAmount.Assets
}

// DatumHash returns the declared datum hash, or nil if the output carries an
// inline datum or no datum at all
func (o TransactionOutput) DatumHash() *Blake2b256 {
	return o.TxDatumOption.Hash()
}

// Datum returns the inline datum, or nil if there is none
func (o TransactionOutput) Datum() *Datum {
	return o.TxDatumOption.Datum()
}

func (o TransactionOutput) ScriptRef() *ScriptRef {
	return o.TxScriptRef
}

func (o TransactionOutput) MarshalJSON() ([]byte, error) {
	tmpObj := struct {
		Address   Address     `json:"address"`
		Amount    uint64      `json:"amount"`
		Assets    *MultiAsset `json:"assets,omitempty"`
		Datum     *Datum      `json:"datum,omitempty"`
		DatumHash string      `json:"datumHash,omitempty"`
	}{
		Address: o.OutputAddress,
		Amount:  o.OutputAmount.Amount,
		Assets:  o.OutputAmount.Assets,
		Datum:   o.Datum(),
	}
	if hash := o.DatumHash(); hash != nil {
		tmpObj.DatumHash = hash.String()
	}
	return json.Marshal(&tmpObj)
}

type TransactionBody struct {
	cbor.DecodeStoreCbor
	TxInputs                TransactionInputSet `cbor:"0,keyasint,omitempty"`
	TxOutputs               []TransactionOutput `cbor:"1,keyasint,omitempty"`
	TxFee                   uint64              `cbor:"2,keyasint,omitempty"`
	Ttl                     *uint64             `cbor:"3,keyasint,omitempty"`
	TxCertificates          []cbor.RawMessage   `cbor:"4,keyasint,omitempty"`
	TxWithdrawals           map[*Address]uint64 `cbor:"5,keyasint,omitempty"`
	TxAuxDataHash           *Blake2b256         `cbor:"7,keyasint,omitempty"`
	TxValidityIntervalStart *uint64             `cbor:"8,keyasint,omitempty"`
	TxMint                  *MultiAsset         `cbor:"9,keyasint,omitempty"`
	TxScriptDataHash        *Blake2b256         `cbor:"11,keyasint,omitempty"`
	TxCollateral            []TransactionInput  `cbor:"13,keyasint,omitempty"`
	TxRequiredSigners       []Blake2b224        `cbor:"14,keyasint,omitempty"`
	NetworkId               uint8               `cbor:"15,keyasint,omitempty"`
	TxCollateralReturn      *TransactionOutput  `cbor:"16,keyasint,omitempty"`
	TxTotalCollateral       uint64              `cbor:"17,keyasint,omitempty"`
	TxReferenceInputs       []TransactionInput  `cbor:"18,keyasint,omitempty"`
}

func (b *TransactionBody) UnmarshalCBOR(cborData []byte) error {
	return b.UnmarshalCbor(cborData, b)
}

// Hash returns the transaction ID, the Blake2b256 hash of the body's original
// CBOR encoding
func (b *TransactionBody) Hash() Blake2b256 {
	return Blake2b256Hash(b.Cbor())
}

func (b *TransactionBody) Inputs() []TransactionInput {
	return b.TxInputs.Items()
}

func (b *TransactionBody) Outputs() []TransactionOutput {
	return b.TxOutputs
}

func (b *TransactionBody) Fee() uint64 {
	return b.TxFee
}

// TTL returns the TTL slot, or nil when the transaction has no upper
// validity bound. An explicit slot 0 is distinct from an absent field
func (b *TransactionBody) TTL() *uint64 {
	return b.Ttl
}

// ValidityIntervalStart returns the validity start slot, or nil when the
// transaction has no lower validity bound
func (b *TransactionBody) ValidityIntervalStart() *uint64 {
	return b.TxValidityIntervalStart
}

// Certificates returns the raw certificates. Certificates are never decoded
// beyond detecting their presence
func (b *TransactionBody) Certificates() []cbor.RawMessage {
	return b.TxCertificates
}

func (b *TransactionBody) Withdrawals() map[*Address]uint64 {
	return b.TxWithdrawals
}

func (b *TransactionBody) Mint() *MultiAsset {
	return b.TxMint
}

func (b *TransactionBody) RequiredSigners() []Blake2b224 {
	return b.TxRequiredSigners
}

func (b *TransactionBody) Collateral() []TransactionInput {
	return b.TxCollateral
}

func (b *TransactionBody) ReferenceInputs() []TransactionInput {
	return b.TxReferenceInputs
}

type Redeemer struct {
	cbor.StructAsArray
	Tag     RedeemerTag
	Index   uint32
	Data    Datum
	ExUnits ExUnits
}

// Hash returns the Blake2b256 hash of the redeemer's CBOR encoding. This is
// the content hash used to key the redeemer table in the script context
func (r Redeemer) Hash() Blake2b256 {
	cborData, err := cbor.Encode(&r)
	if err != nil {
		panic(fmt.Sprintf("failed to encode redeemer: %s", err))
	}
	return Blake2b256Hash(cborData)
}

// ToPlutusData returns the redeemer as the 4-element list scripts see in the
// script context redeemer table
func (r Redeemer) ToPlutusData() data.PlutusData {
	return data.NewList(
		data.NewInteger(big.NewInt(int64(r.Tag))),
		data.NewInteger(big.NewInt(int64(r.Index))),
		r.Data.Data,
		r.ExUnits.ToPlutusData(),
	)
}

type Redeemers []Redeemer

type VkeyWitness struct {
	cbor.StructAsArray
	Vkey      []byte
	Signature []byte
}

type BootstrapWitness struct {
	cbor.StructAsArray
	PublicKey  []byte
	Signature  []byte
	ChainCode  []byte
	Attributes []byte
}

type WitnessSet struct {
	cbor.DecodeStoreCbor
	VkeyWitnesses      []VkeyWitness      `cbor:"0,keyasint,omitempty"`
	WsNativeScripts    []NativeScript     `cbor:"1,keyasint,omitempty"`
	BootstrapWitnesses []BootstrapWitness `cbor:"2,keyasint,omitempty"`
	WsPlutusV1Scripts  [][]byte           `cbor:"3,keyasint,omitempty"`
	WsPlutusData       []Datum            `cbor:"4,keyasint,omitempty"`
	WsRedeemers        Redeemers          `cbor:"5,keyasint,omitempty"`
	WsPlutusV2Scripts  [][]byte           `cbor:"6,keyasint,omitempty"`
	WsPlutusV3Scripts  [][]byte           `cbor:"7,keyasint,omitempty"`
}

func (w *WitnessSet) UnmarshalCBOR(cborData []byte) error {
	return w.UnmarshalCbor(cborData, w)
}

func (w WitnessSet) Vkey() []VkeyWitness {
	return w.VkeyWitnesses
}

func (w WitnessSet) Bootstrap() []BootstrapWitness {
	return w.BootstrapWitnesses
}

func (w WitnessSet) NativeScripts() []NativeScript {
	return w.WsNativeScripts
}

func (w WitnessSet) PlutusV1Scripts() [][]byte {
	return w.WsPlutusV1Scripts
}

func (w WitnessSet) PlutusV2Scripts() [][]byte {
	return w.WsPlutusV2Scripts
}

func (w WitnessSet) PlutusV3Scripts() [][]byte {
	return w.WsPlutusV3Scripts
}

func (w WitnessSet) PlutusData() []Datum {
	return w.WsPlutusData
}

func (w WitnessSet) Redeemers() Redeemers {
	return w.WsRedeemers
}

type Transaction struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Body       TransactionBody
	WitnessSet WitnessSet
	TxIsValid  bool
	TxMetadata cbor.RawMessage
}

func NewTransactionFromCbor(cborData []byte) (*Transaction, error) {
	var tx Transaction
	if _, err := cbor.Decode(cborData, &tx); err != nil {
		return nil, fmt.Errorf("transaction decode error: %w", err)
	}
	return &tx, nil
}

func (t *Transaction) UnmarshalCBOR(cborData []byte) error {
	return t.UnmarshalCbor(cborData, t)
}

// Hash returns the transaction ID
func (t Transaction) Hash() Blake2b256 {
	return t.Body.Hash()
}

func (t Transaction) Witnesses() WitnessSet {
	return t.WitnessSet
}

func (t Transaction) IsValid() bool {
	return t.TxIsValid
}

type Utxo struct {
	Id     TransactionInput
	Output TransactionOutput
}
