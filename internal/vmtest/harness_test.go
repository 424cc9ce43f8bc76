package vmtest_test

import (
	"os"
	"testing"

	"github.com/splanck/viper-sub036/internal/vmtest"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Exit(vmtest.Main(m))
}

func TestCaptureTrapReportsDivideByZero(t *testing.T) {
	code, stderr := vmtest.CaptureTrap(t, `il 0.1
func @main() -> i64 {
entry:
  %t0 = sdiv.chk0 1, 0
  ret %t0
}
`)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "DivideByZero")
}

func TestCaptureTrapCleanHaltExitsWithResult(t *testing.T) {
	code, stderr := vmtest.CaptureTrap(t, `il 0.1
func @main() -> i64 {
entry:
  ret 7
}
`)
	assert.Equal(t, 7, code)
	assert.Empty(t, stderr)
}
