package debug_test

import (
	"testing"

	"github.com/splanck/viper-sub036/debug"
	"github.com/stretchr/testify/assert"
)

func TestParseBreakSpecLabel(t *testing.T) {
	bp := debug.ParseBreakSpec("L3")
	assert.Equal(t, debug.BreakLabel, bp.Kind)
	assert.Equal(t, "L3", bp.Label)
}

func TestParseBreakSpecSourceLine(t *testing.T) {
	bp := debug.ParseBreakSpec("path/to/file.bas:7")
	assert.Equal(t, debug.BreakSrc, bp.Kind)
	assert.Equal(t, "path/to/file.bas", bp.Path)
	assert.Equal(t, 7, bp.Line)
}

func TestParseBreakSpecToleratesWhitespaceAroundColonAndDigits(t *testing.T) {
	bp := debug.ParseBreakSpec("file.bas :  7")
	assert.Equal(t, debug.BreakSrc, bp.Kind)
	assert.Equal(t, 7, bp.Line)
}

func TestParseBreakSpecWindowsPath(t *testing.T) {
	bp := debug.ParseBreakSpec(`C:\project\main.bas:12`)
	assert.Equal(t, debug.BreakSrc, bp.Kind)
	assert.Equal(t, 12, bp.Line)
	assert.Equal(t, "C:/project/main.bas", bp.Path)
}

func TestParseBreakSpecBareDigitsIsALabel(t *testing.T) {
	bp := debug.ParseBreakSpec("12:5")
	assert.Equal(t, debug.BreakLabel, bp.Kind)
	assert.Equal(t, "12:5", bp.Label)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, ".", debug.NormalizePath(""))
	assert.Equal(t, "C:/project/main.bas", debug.NormalizePath(`C:\project\src\..\main.bas`))
	assert.Equal(t, "a/b", debug.NormalizePath("./a/b/"))
	assert.Equal(t, "/a/b", debug.NormalizePath("/a/./b"))
}
