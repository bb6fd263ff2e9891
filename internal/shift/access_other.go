//go:build !linux && !darwin

package shift

import "os"

func checkAccess(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	return f.Close()
}
