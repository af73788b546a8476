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
	"github.com/blinklabs-io/txeval/ledger"
)

type mockEvaluator struct {
	calls []mockEvaluatorCall
	err   error
}

type mockEvaluatorCall struct {
	script ledger.PlutusV2Script
	args   []data.PlutusData
	budget ledger.ExUnits
}

func (m *mockEvaluator) Evaluate(
	script ledger.PlutusV2Script,
	args []data.PlutusData,
	budget ledger.ExUnits,
) (ledger.ExUnits, error) {
	m.calls = append(
		m.calls,
		mockEvaluatorCall{
			script: script,
			args:   args,
			budget: budget,
		},
	)
	if m.err != nil {
		return ledger.ExUnits{}, m.err
	}
	return ledger.ExUnits{Memory: 100, Steps: 200}, nil
}

func TestInvocationArgsSpending(t *testing.T) {
	datum := testDatum(t, 42)
	invocation := ScriptInvocation{
		Script:        testScript,
		Datum:         &datum,
		Redeemer:      testSpendRedeemer(t, 0),
		ScriptContext: data.NewConstr(0),
	}
	args := InvocationArgs(invocation)
	if len(args) != 3 {
		t.Fatalf("unexpected argument count: %d", len(args))
	}
	if !reflect.DeepEqual(args[0], datum.Data) {
		t.Fatalf("first argument is not the datum")
	}
	if !reflect.DeepEqual(args[1], invocation.Redeemer.Data.Data) {
		t.Fatalf("second argument is not the redeemer data")
	}
	if !reflect.DeepEqual(args[2], invocation.ScriptContext) {
		t.Fatalf("third argument is not the script context")
	}
}

func TestInvocationArgsMinting(t *testing.T) {
	invocation := ScriptInvocation{
		Script: testScript,
		Redeemer: ledger.Redeemer{
			Tag:  ledger.RedeemerTagMint,
			Data: testDatum(t, 0),
		},
		ScriptContext: data.NewConstr(0),
	}
	args := InvocationArgs(invocation)
	// Minting scripts take no datum
	if len(args) != 2 {
		t.Fatalf("unexpected argument count: %d", len(args))
	}
	if !reflect.DeepEqual(args[0], invocation.Redeemer.Data.Data) {
		t.Fatalf("first argument is not the redeemer data")
	}
}

func TestEvaluateInvocations(t *testing.T) {
	datum := testDatum(t, 42)
	redeemer := testSpendRedeemer(t, 0)
	invocations := []ScriptInvocation{
		{
			Script:        testScript,
			Datum:         &datum,
			Redeemer:      redeemer,
			ScriptContext: data.NewConstr(0),
		},
	}
	evaluator := &mockEvaluator{}
	usedExUnits, err := EvaluateInvocations(evaluator, invocations)
	if err != nil {
		t.Fatalf("failure evaluating invocations: %s", err)
	}
	if len(usedExUnits) != 1 {
		t.Fatalf("unexpected result count: %d", len(usedExUnits))
	}
	if usedExUnits[0].Memory != 100 || usedExUnits[0].Steps != 200 {
		t.Fatalf("unexpected execution units: %+v", usedExUnits[0])
	}
	if len(evaluator.calls) != 1 {
		t.Fatalf("unexpected call count: %d", len(evaluator.calls))
	}
	// The evaluator receives the redeemer's budget
	if evaluator.calls[0].budget != redeemer.ExUnits {
		t.Fatalf("unexpected budget: %+v", evaluator.calls[0].budget)
	}
}

func TestEvaluateInvocationsFailure(t *testing.T) {
	datum := testDatum(t, 42)
	invocations := []ScriptInvocation{
		{
			Script:        testScript,
			Datum:         &datum,
			Redeemer:      testSpendRedeemer(t, 0),
			ScriptContext: data.NewConstr(0),
		},
	}
	evaluator := &mockEvaluator{
		err: errors.New("script execution failed"),
	}
	if _, err := EvaluateInvocations(evaluator, invocations); err == nil {
		t.Fatalf("expected evaluation error")
	}
}
