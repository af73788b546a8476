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

	"github.com/blinklabs-io/plutigo/cek"
	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/plutigo/syn"
	"github.com/blinklabs-io/txeval/cbor"
	"github.com/blinklabs-io/txeval/ledger"
)

// Evaluator executes a PlutusV2 script with the given arguments under an
// execution budget and reports the execution units consumed
type Evaluator interface {
	Evaluate(
		script ledger.PlutusV2Script,
		args []data.PlutusData,
		budget ledger.ExUnits,
	) (ledger.ExUnits, error)
}

// CekEvaluator evaluates scripts on the plutigo CEK machine
type CekEvaluator struct{}

func NewCekEvaluator() *CekEvaluator {
	return &CekEvaluator{}
}

func (CekEvaluator) Evaluate(
	script ledger.PlutusV2Script,
	args []data.PlutusData,
	budget ledger.ExUnits,
) (ledger.ExUnits, error) {
	var usedExUnits ledger.ExUnits
	// Set budget
	machineBudget := cek.DefaultExBudget
	if budget.Steps > 0 || budget.Memory > 0 {
		machineBudget = cek.ExBudget{
			Cpu: budget.Steps,
			Mem: budget.Memory,
		}
	}
	// Decode raw script as bytestring to get actual script bytes
	var innerScript []byte
	if _, err := cbor.Decode([]byte(script), &innerScript); err != nil {
		return usedExUnits, err
	}
	// Decode program
	program, err := syn.Decode[syn.DeBruijn](innerScript)
	if err != nil {
		return usedExUnits, fmt.Errorf("decode script: %w", err)
	}
	// Apply arguments to program
	term := program.Term
	for _, arg := range args {
		// Round-trip each argument through its encoded form so the script
		// sees canonical data
		argCbor, err := data.Encode(arg)
		if err != nil {
			return usedExUnits, fmt.Errorf("encode argument: %w", err)
		}
		tmpArg, err := data.Decode(argCbor)
		if err != nil {
			return usedExUnits, fmt.Errorf("decode argument: %w", err)
		}
		term = &syn.Apply[syn.DeBruijn]{
			Function: term,
			Argument: &syn.Constant{
				Con: &syn.Data{
					Inner: tmpArg,
				},
			},
		}
	}
	// Execute wrapped program
	machine := cek.NewMachine[syn.DeBruijn](200)
	machine.ExBudget = machineBudget
	if _, err := machine.Run(term); err != nil {
		return usedExUnits, fmt.Errorf("execute script: %w", err)
	}
	consumedBudget := machineBudget.Sub(&machine.ExBudget)
	usedExUnits.Memory = consumedBudget.Mem
	usedExUnits.Steps = consumedBudget.Cpu
	return usedExUnits, nil
}

// InvocationArgs returns the evaluation arguments for a script invocation:
// the datum (spending only), the redeemer data, and the script context
func InvocationArgs(invocation ScriptInvocation) []data.PlutusData {
	var args []data.PlutusData
	if invocation.Datum != nil {
		args = append(args, invocation.Datum.Data)
	}
	args = append(
		args,
		invocation.Redeemer.Data.Data,
		invocation.ScriptContext,
	)
	return args
}

// EvaluateInvocations runs every invocation against the evaluator. It fails
// on the first invocation that errors or exceeds its redeemer's execution
// budget, otherwise returns the execution units consumed per invocation in
// order
func EvaluateInvocations(
	evaluator Evaluator,
	invocations []ScriptInvocation,
) ([]ledger.ExUnits, error) {
	ret := make([]ledger.ExUnits, 0, len(invocations))
	for idx, invocation := range invocations {
		usedExUnits, err := evaluator.Evaluate(
			invocation.Script,
			InvocationArgs(invocation),
			invocation.Redeemer.ExUnits,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"invocation %d (%s): %w",
				idx,
				invocation.Redeemer.Tag,
				err,
			)
		}
		ret = append(ret, usedExUnits)
	}
	return ret, nil
}
