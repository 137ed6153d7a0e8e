//go:build !linux

package cmd

import "errors"

func countInstructions(f func() error) (instructions uint64, perfErr, err error) {
	return 0, errors.New("instruction counting needs linux perf events"), f()
}
