//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f once under a hardware instruction counter. perfErr
// reports a counter that could not be opened or read; f runs either way.
func countInstructions(f func() error) (instructions uint64, perfErr, err error) {
	var (
		ran bool
		pv  *perf.ProfileValue
	)
	pv, perfErr = perf.CPUInstructions(func() error {
		ran = true
		err = f()
		return nil
	})
	if !ran {
		err = f()
		return
	}
	if perfErr == nil {
		instructions = pv.Value
	}
	return
}
