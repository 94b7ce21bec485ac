// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

// GasSchedule prices the host primitives a contract frame can use.
type GasSchedule struct {
	StorageRead     uint64 `toml:"storage_read"`
	StorageWrite    uint64 `toml:"storage_write"`
	CallBase        uint64 `toml:"call_base"`
	InstantiateBase uint64 `toml:"instantiate_base"`
	Terminate       uint64 `toml:"terminate"`
	Log             uint64 `toml:"log"`
}

// DefaultGasSchedule returns the schedule used when none is configured.
func DefaultGasSchedule() GasSchedule {
	return GasSchedule{
		StorageRead:     200,
		StorageWrite:    5_000,
		CallBase:        700,
		InstantiateBase: 32_000,
		Terminate:       5_000,
		Log:             375,
	}
}
