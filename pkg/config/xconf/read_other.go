//go:build !unix

package xconf

import (
	"fmt"
	"os"
)

func readFile(path string, limit int64) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, len(data))
	}
	return data, nil
}
