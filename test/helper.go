// Package test_test holds helpers shared by tests of different packages.
package test_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// UTCTime creates instance of time in UTC timezone this helps avoid problems running tests with different timezone computers
func UTCTime(sec int64) time.Time {
	return time.Unix(sec, 0).In(time.UTC)
}

// LoadBytes loads file contents from `testdata` directory next to the test file calling it.
func LoadBytes(t *testing.T, name string) []byte {
	t.Helper()

	_, caller, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatal("could not resolve caller of LoadBytes")
	}
	path := filepath.Join(filepath.Dir(caller), "testdata", name)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
