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

	"github.com/blinklabs-io/txeval/ledger"
)

// UnsupportedKeyTypeError is returned when an address credential cannot be
// represented as script context data, such as a Byron payment part
type UnsupportedKeyTypeError struct {
	KeyType string
}

func (e UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type: %s", e.KeyType)
}

// CertificatesUnsupportedError is returned when building a script context for
// a transaction that carries certificates
type CertificatesUnsupportedError struct {
	Count int
}

func (e CertificatesUnsupportedError) Error() string {
	return fmt.Sprintf(
		"transaction contains %d certificate(s), which are not supported",
		e.Count,
	)
}

// MissingRedeemerError is returned when no single redeemer matches a script
// invocation. Duplicate is set when more than one redeemer claims the same
// tag and index
type MissingRedeemerError struct {
	Tag       ledger.RedeemerTag
	Index     uint32
	Duplicate bool
}

func (e MissingRedeemerError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf(
			"duplicate redeemer for tag %s, index %d",
			e.Tag,
			e.Index,
		)
	}
	return fmt.Sprintf(
		"missing redeemer for tag %s, index %d",
		e.Tag,
		e.Index,
	)
}

// UnsupportedScriptError is returned when an invocation requires a script
// that is either absent or not a PlutusV2 script
type UnsupportedScriptError struct {
	Hash ledger.ScriptHash
}

func (e UnsupportedScriptError) Error() string {
	return fmt.Sprintf(
		"missing or unsupported script with hash %s",
		e.Hash.String(),
	)
}

// MissingDatumError is returned when a spending invocation has neither an
// inline datum nor a witness datum matching the output's datum hash
type MissingDatumError struct {
	Hash  *ledger.DatumHash
	Input ledger.TransactionInput
}

func (e MissingDatumError) Error() string {
	if e.Hash != nil {
		return fmt.Sprintf(
			"missing datum %s for input %s",
			e.Hash.String(),
			e.Input.String(),
		)
	}
	return fmt.Sprintf(
		"missing datum for input %s",
		e.Input.String(),
	)
}
