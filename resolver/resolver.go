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

// Package resolver provides lookups of the transaction outputs referenced by
// a transaction's inputs
package resolver

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/txeval/ledger"
)

// Resolver resolves transaction inputs to the outputs they spend. The
// returned outputs match the order of the requested inputs
type Resolver interface {
	ResolveInputs(
		ctx context.Context,
		inputs []ledger.TransactionInput,
	) ([]ledger.TransactionOutput, error)
}

// StaticResolver resolves inputs from a fixed set of UTxOs
type StaticResolver struct {
	utxos map[ledger.TransactionInput]ledger.TransactionOutput
}

func NewStaticResolver(utxos []ledger.Utxo) *StaticResolver {
	r := &StaticResolver{
		utxos: make(
			map[ledger.TransactionInput]ledger.TransactionOutput,
			len(utxos),
		),
	}
	for _, utxo := range utxos {
		r.utxos[utxo.Id] = utxo.Output
	}
	return r
}

func (r *StaticResolver) AddUtxo(utxo ledger.Utxo) {
	r.utxos[utxo.Id] = utxo.Output
}

func (r *StaticResolver) ResolveInputs(
	_ context.Context,
	inputs []ledger.TransactionInput,
) ([]ledger.TransactionOutput, error) {
	ret := make([]ledger.TransactionOutput, 0, len(inputs))
	for _, input := range inputs {
		output, ok := r.utxos[input]
		if !ok {
			return nil, fmt.Errorf("unknown input: %s", input.String())
		}
		ret = append(ret, output)
	}
	return ret, nil
}
