//go:build !unix

package machine

import "runtime"

func hostMachine() (string, error) {
	return runtime.GOARCH, nil
}
