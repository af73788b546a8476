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
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
)

// SlotConfig describes the slot-to-wallclock mapping of a network. ZeroTime
// is the POSIX time in milliseconds of slot ZeroSlot, and SlotLength is the
// slot duration in milliseconds
type SlotConfig struct {
	ZeroTime   uint64
	ZeroSlot   uint64
	SlotLength uint64
}

// SlotToTime converts a slot number to POSIX time in milliseconds
func (s SlotConfig) SlotToTime(slot uint64) uint64 {
	return s.ZeroTime + (slot-s.ZeroSlot)*s.SlotLength
}

var (
	SlotConfigMainnet = SlotConfig{
		ZeroTime:   1596059091000,
		ZeroSlot:   4492800,
		SlotLength: 1000,
	}
	SlotConfigPreprod = SlotConfig{
		ZeroTime:   1655769600000,
		ZeroSlot:   86400,
		SlotLength: 1000,
	}
	SlotConfigPreview = SlotConfig{
		ZeroTime:   1666656000000,
		ZeroSlot:   0,
		SlotLength: 1000,
	}
)

func finiteBound(val uint64) data.PlutusData {
	// Finite bounds are inclusive
	return data.NewConstr(
		0,
		data.NewConstr(
			1,
			data.NewInteger(new(big.Int).SetUint64(val)),
		),
		data.NewConstr(1),
	)
}

func infiniteBound(constrIdx uint) data.PlutusData {
	return data.NewConstr(
		0,
		data.NewConstr(constrIdx),
		data.NewConstr(0),
	)
}

// TimeRange builds the transaction validity interval from the validity start
// slot and TTL slot. A nil slot means the corresponding bound is absent.
// When slotConfig is non-nil the bounds are converted to POSIX milliseconds,
// otherwise the raw slot numbers are used
func TimeRange(
	validityStart *uint64,
	ttl *uint64,
	slotConfig *SlotConfig,
) data.PlutusData {
	boundValue := func(slot uint64) uint64 {
		if slotConfig != nil {
			return slotConfig.SlotToTime(slot)
		}
		return slot
	}
	lowerBound := infiniteBound(0)
	if validityStart != nil {
		lowerBound = finiteBound(boundValue(*validityStart))
	}
	upperBound := infiniteBound(2)
	if ttl != nil {
		upperBound = finiteBound(boundValue(*ttl))
	}
	return data.NewConstr(
		0,
		lowerBound,
		upperBound,
	)
}
