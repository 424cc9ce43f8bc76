package ilread_test

import (
	"testing"

	"github.com/splanck/viper-sub036/il"
	"github.com/splanck/viper-sub036/ilread"
	"github.com/splanck/viper-sub036/ilwrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithSample = `il 0.1
func @main() -> i64 {
entry:
  %t0 = add 40, 2
  ret %t0
}
`

func TestParseArithmeticReturn(t *testing.T) {
	mod, diags := ilread.Parse(arithSample)
	require.Empty(t, diags)
	require.Len(t, mod.Functions, 1)
	fn := &mod.Functions[0]
	assert.Equal(t, "main", fn.Name)
	require.Len(t, fn.Blocks, 1)
	entry := &fn.Blocks[0]
	require.Len(t, entry.Instructions, 2)
	assert.Equal(t, il.OpAdd, entry.Instructions[0].Op)
	assert.True(t, entry.Instructions[0].HasResult)
	assert.Equal(t, il.OpRet, entry.Instructions[1].Op)
	assert.True(t, entry.Terminated())
}

func TestRoundTripPrintParse(t *testing.T) {
	mod, diags := ilread.Parse(arithSample)
	require.Empty(t, diags)

	printed := ilwrite.Print(mod)
	mod2, diags2 := ilread.Parse(printed)
	require.Empty(t, diags2)

	printed2 := ilwrite.Print(mod2)
	assert.Equal(t, printed, printed2, "print(parse(print(m))) must equal print(m)")
}

func TestParseDivergentBranch(t *testing.T) {
	src := `il 0.1
func @main(%x:i64) -> i64 {
entry:
  cbr %t0, yes(), no()
yes:
  ret 1
no:
  ret 0
}
`
	mod, diags := ilread.Parse(src)
	require.Empty(t, diags)
	fn := mod.Functions[0]
	require.Len(t, fn.Blocks, 3)
	assert.Equal(t, "entry", fn.Blocks[0].Label)
	term := fn.Blocks[0].Terminator()
	require.NotNil(t, term)
	assert.Equal(t, il.OpCBr, term.Op)
	assert.Equal(t, []string{"yes", "no"}, term.Labels)
}

func TestParseErrorsAreStructured(t *testing.T) {
	src := "il 0.1\nfunc main() -> i64 {\nentry:\nret 0\n}\n"
	_, diags := ilread.Parse(src)
	require.NotEmpty(t, diags)
}

func TestParseUnknownType(t *testing.T) {
	src := "il 0.1\nglobal bogus @g = \"x\"\n"
	_, diags := ilread.Parse(src)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "unknown type")
}
