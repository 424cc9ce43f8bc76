package ilread

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splanck/viper-sub036/il"
)

// Parser carries the Module under construction, the current function/block
// insertion point, and a 1-based line counter, per spec.md's "ParserState"
// description. One token of lookahead is buffered in cur/next.
type Parser struct {
	lex  *Lexer
	cur  Token
	next Token

	mod  *il.Module
	fn   *il.Function
	blk  *il.BasicBlock

	pendingLoc *il.Loc
	diags      []Diagnostic
}

// Parse parses IL text into a Module, returning any diagnostics encountered.
// Parsing never aborts: on error the parser skips to the next recoverable
// point (typically the next line) and continues, so multiple diagnostics
// can be reported from a single pass.
func Parse(src string) (*il.Module, []Diagnostic) {
	p := &Parser{lex: NewLexer(src)}
	p.cur = p.lex.Next()
	p.next = p.lex.Next()
	p.parseModule()
	return p.mod, p.diags
}

func (p *Parser) errorf(rule, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{
		Line:    p.cur.Line,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lex.Next()
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == TokNewline {
		p.advance()
	}
}

// skipToNewline discards tokens up to and including the next newline or
// EOF, used to recover after a malformed line.
func (p *Parser) skipToNewline() {
	for p.cur.Kind != TokNewline && p.cur.Kind != TokEOF {
		p.advance()
	}
	if p.cur.Kind == TokNewline {
		p.advance()
	}
}

func (p *Parser) expect(k TokKind, what string) (Token, bool) {
	if p.cur.Kind != k {
		p.errorf("", "expected %s, got %q", what, p.cur.Literal)
		return p.cur, false
	}
	t := p.cur
	p.advance()
	return t, true
}

func (p *Parser) parseModule() {
	p.skipNewlines()
	if p.cur.Kind != TokIdent || p.cur.Literal != "il" {
		p.errorf("", "malformed module header: expected 'il <version>'")
		p.mod = il.NewModule("0.1")
		return
	}
	p.advance()
	version := "0.1"
	if p.cur.Kind == TokIdent || p.cur.Kind == TokNumber {
		version = p.cur.Literal
		p.advance()
	}
	p.mod = il.NewModule(version)
	p.skipToNewline()

	for {
		p.skipNewlines()
		switch {
		case p.cur.Kind == TokEOF:
			return
		case p.cur.Kind == TokIdent && p.cur.Literal == "extern":
			p.parseExtern()
		case p.cur.Kind == TokIdent && p.cur.Literal == "global":
			p.parseGlobal()
		case p.cur.Kind == TokIdent && p.cur.Literal == "func":
			p.parseFunction()
		default:
			p.errorf("", "unexpected top-level token %q", p.cur.Literal)
			p.skipToNewline()
		}
	}
}

func (p *Parser) parseType() (il.Type, bool) {
	if p.cur.Kind != TokIdent {
		p.errorf("", "unknown type %q", p.cur.Literal)
		return il.Type{}, false
	}
	k, ok := il.ParseKind(p.cur.Literal)
	if !ok {
		p.errorf("", "unknown type %q", p.cur.Literal)
		p.advance()
		return il.Type{}, false
	}
	p.advance()
	return il.Type{Kind: k}, true
}

func (p *Parser) parseExtern() {
	p.advance() // "extern"
	if _, ok := p.expect(TokAt, "'@'"); !ok {
		p.skipToNewline()
		return
	}
	name, ok := p.expect(TokIdent, "extern name")
	if !ok {
		p.skipToNewline()
		return
	}
	if _, ok := p.expect(TokLParen, "'('"); !ok {
		p.skipToNewline()
		return
	}
	var params []il.Type
	for p.cur.Kind != TokRParen && p.cur.Kind != TokEOF && p.cur.Kind != TokNewline {
		t, ok := p.parseType()
		if !ok {
			break
		}
		params = append(params, t)
		if p.cur.Kind == TokComma {
			p.advance()
		}
	}
	p.expect(TokRParen, "')'")
	if _, ok := p.expect(TokArrow, "missing '->'"); !ok {
		p.skipToNewline()
		return
	}
	ret, _ := p.parseType()
	p.mod.Externs = append(p.mod.Externs, il.Extern{Name: name.Literal, ReturnType: ret, ParamTypes: params})
	p.skipToNewline()
}

func (p *Parser) parseGlobal() {
	p.advance() // "global"
	isConst := false
	if p.cur.Kind == TokIdent && p.cur.Literal == "const" {
		isConst = true
		p.advance()
	}
	ty, ok := p.parseType()
	if !ok {
		p.skipToNewline()
		return
	}
	if _, ok := p.expect(TokAt, "'@'"); !ok {
		p.skipToNewline()
		return
	}
	name, ok := p.expect(TokIdent, "global name")
	if !ok {
		p.skipToNewline()
		return
	}
	if _, ok := p.expect(TokEquals, "missing '='"); !ok {
		p.skipToNewline()
		return
	}
	lit, ok := p.expect(TokString, "string literal")
	var data []byte
	if ok {
		data = []byte(lit.Literal)
	} else {
		p.errorf("", "unknown global %q", name.Literal)
	}
	p.mod.Globals = append(p.mod.Globals, il.Global{Name: name.Literal, Type: ty, Const: isConst, InitData: data})
	p.skipToNewline()
}

func (p *Parser) parseParamList() []il.Param {
	var params []il.Param
	for p.cur.Kind != TokRParen && p.cur.Kind != TokEOF && p.cur.Kind != TokNewline {
		if _, ok := p.expect(TokPercent, "'%'"); !ok {
			p.errorf("", "bad param")
			break
		}
		nameTok, ok := p.expect(TokIdent, "param name")
		if !ok {
			p.errorf("", "bad param")
			break
		}
		if _, ok := p.expect(TokColon, "':'"); !ok {
			p.errorf("", "bad param")
			break
		}
		ty, ok := p.parseType()
		if !ok {
			p.errorf("", "bad param")
			break
		}
		params = append(params, il.Param{Name: nameTok.Literal, Type: ty})
		if p.cur.Kind == TokComma {
			p.advance()
		}
	}
	return params
}

func (p *Parser) parseFunction() {
	p.advance() // "func"
	if _, ok := p.expect(TokAt, "'@'"); !ok {
		p.errorf("", "malformed function header")
		p.skipToNewline()
		return
	}
	name, ok := p.expect(TokIdent, "function name")
	if !ok {
		p.errorf("", "malformed function header")
		p.skipToNewline()
		return
	}
	if _, ok := p.expect(TokLParen, "'('"); !ok {
		p.errorf("", "malformed function header")
		p.skipToNewline()
		return
	}
	params := p.parseParamList()
	p.expect(TokRParen, "')'")
	if _, ok := p.expect(TokArrow, "missing '->'"); !ok {
		p.errorf("", "malformed function header")
		p.skipToNewline()
		return
	}
	ret, _ := p.parseType()
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		p.errorf("", "malformed function header")
		p.skipToNewline()
		return
	}

	fn := il.Function{Name: name.Literal, Params: params, ReturnType: ret}
	// Assign slot ids to function params.
	nextTemp := 0
	for i := range fn.Params {
		fn.Params[i].SlotID = nextTemp
		nextTemp++
	}
	p.mod.Functions = append(p.mod.Functions, fn)
	p.fn = &p.mod.Functions[len(p.mod.Functions)-1]
	p.fn.NextTempID = nextTemp

	p.skipToNewline()
	for {
		p.skipNewlines()
		if p.cur.Kind == TokRBrace {
			p.advance()
			break
		}
		if p.cur.Kind == TokEOF {
			p.errorf("", "unterminated function body")
			break
		}
		p.parseBlock()
	}
	p.fn = nil
	p.blk = nil
	p.skipToNewline()
}

func (p *Parser) parseBlock() {
	labelTok, ok := p.expect(TokIdent, "block label")
	if !ok {
		p.skipToNewline()
		return
	}
	p.fn.Blocks = append(p.fn.Blocks, il.BasicBlock{Label: labelTok.Literal})
	bb := &p.fn.Blocks[len(p.fn.Blocks)-1]
	p.blk = bb
	p.pendingLoc = nil

	if p.cur.Kind == TokLParen {
		p.advance()
		params := p.parseParamList()
		p.expect(TokRParen, "')'")
		for i := range params {
			params[i].SlotID = p.fn.AllocTemp()
		}
		bb.Params = params
	}
	if _, ok := p.expect(TokColon, "':'"); !ok {
		p.errorf("", "instruction outside block")
		p.skipToNewline()
		return
	}
	p.skipToNewline()

	for {
		p.skipNewlines()
		if p.cur.Kind == TokRBrace || p.cur.Kind == TokEOF {
			return
		}
		if p.cur.Kind == TokDot {
			p.parseLocDirective()
			continue
		}
		p.parseInstruction()
		if bb.Terminated() {
			return
		}
	}
}

func (p *Parser) parseLocDirective() {
	p.advance() // '.'
	kw, ok := p.expect(TokIdent, "'loc'")
	if !ok || kw.Literal != "loc" {
		p.errorf("", "malformed .loc directive")
		p.skipToNewline()
		return
	}
	fileID, ok1 := p.parseUInt()
	line, ok2 := p.parseUInt()
	col, ok3 := p.parseUInt()
	if !ok1 || !ok2 || !ok3 {
		p.errorf("", "malformed .loc directive")
		p.skipToNewline()
		return
	}
	p.pendingLoc = &il.Loc{FileID: fileID, Line: line, Col: col}
	p.skipToNewline()
}

func (p *Parser) parseUInt() (int, bool) {
	if p.cur.Kind != TokNumber {
		return 0, false
	}
	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil || n < 0 {
		return 0, false
	}
	p.advance()
	return n, true
}

func (p *Parser) parseValue() (il.Value, bool) {
	switch {
	case p.cur.Kind == TokPercent:
		p.advance()
		nameTok, ok := p.expect(TokIdent, "temp name")
		if !ok {
			return il.Value{}, false
		}
		id, err := parseTempName(nameTok.Literal)
		if err != nil {
			p.errorf("", "bad temp reference %q", nameTok.Literal)
			return il.Value{}, false
		}
		return il.VTemp(id), true
	case p.cur.Kind == TokAt:
		p.advance()
		nameTok, ok := p.expect(TokIdent, "global name")
		if !ok {
			return il.Value{}, false
		}
		return il.VGlobal(nameTok.Literal), true
	case p.cur.Kind == TokIdent && p.cur.Literal == "null":
		p.advance()
		return il.VNull(il.T(il.Ptr)), true
	case p.cur.Kind == TokNumber:
		lit := p.cur.Literal
		p.advance()
		if strings.ContainsAny(lit, ".eE") {
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				p.errorf("", "bad float literal %q", lit)
				return il.Value{}, false
			}
			return il.VFloat(f), true
		}
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.errorf("", "bad int literal %q", lit)
			return il.Value{}, false
		}
		return il.VInt(n), true
	}
	p.errorf("", "expected value, got %q", p.cur.Literal)
	return il.Value{}, false
}

// parseTempName resolves a temp reference written as "t<N>" (the canonical
// printed form) or as bare digits to the id N. Any other identifier, such as
// a parameter's declared name, is rejected: named references are not
// resolved.
func parseTempName(s string) (int, error) {
	if strings.HasPrefix(s, "t") {
		return strconv.Atoi(s[1:])
	}
	return strconv.Atoi(s)
}

func (p *Parser) parseBrTarget() (string, []il.Value) {
	labelTok, ok := p.expect(TokIdent, "block label")
	if !ok {
		return "", nil
	}
	var args []il.Value
	if p.cur.Kind == TokLParen {
		p.advance()
		for p.cur.Kind != TokRParen && p.cur.Kind != TokEOF && p.cur.Kind != TokNewline {
			v, ok := p.parseValue()
			if !ok {
				break
			}
			args = append(args, v)
			if p.cur.Kind == TokComma {
				p.advance()
			}
		}
		p.expect(TokRParen, "')'")
	}
	return labelTok.Literal, args
}

func (p *Parser) parseInstruction() {
	var result int
	hasResult := false
	if p.cur.Kind == TokPercent && p.next.Kind == TokIdent {
		save := *p
		p.advance()
		nameTok, _ := p.expect(TokIdent, "temp name")
		if p.cur.Kind == TokEquals {
			p.advance()
			id, err := parseTempName(nameTok.Literal)
			if err != nil {
				p.errorf("", "bad temp reference %q", nameTok.Literal)
				p.skipToNewline()
				return
			}
			result = id
			hasResult = true
			if id >= p.fn.NextTempID {
				p.fn.NextTempID = id + 1
			}
		} else {
			*p = save
		}
	}

	if p.cur.Kind != TokIdent {
		p.errorf("", "instruction outside block")
		p.skipToNewline()
		return
	}
	mnemonic := p.cur.Literal
	line := p.cur.Line
	p.advance()

	inst := il.Instruction{Loc: p.takeLoc(line)}
	if hasResult {
		inst.HasResult = true
		inst.ResultID = result
	}

	switch mnemonic {
	case "br":
		inst.Op = il.OpBr
		lbl, args := p.parseBrTarget()
		inst.Labels = []string{lbl}
		inst.BrArgs = [][]il.Value{args}
	case "cbr":
		inst.Op = il.OpCBr
		cond, ok := p.parseValue()
		if !ok {
			p.skipToNewline()
			return
		}
		p.expect(TokComma, "','")
		lt, at := p.parseBrTarget()
		p.expect(TokComma, "','")
		lf, af := p.parseBrTarget()
		inst.Operands = []il.Value{cond}
		inst.Labels = []string{lt, lf}
		inst.BrArgs = [][]il.Value{at, af}
	case "ret":
		inst.Op = il.OpRet
		if p.cur.Kind != TokNewline && p.cur.Kind != TokEOF && p.cur.Kind != TokRBrace {
			v, ok := p.parseValue()
			if ok {
				inst.Operands = []il.Value{v}
			}
		}
	case "trap":
		inst.Op = il.OpTrap
	case "alloca":
		inst.Op = il.OpAlloca
		inst.HasResult = hasResult
		n, ok := p.parseUInt()
		if !ok {
			p.errorf("", "bad alloca size")
		}
		inst.AllocaBytes = int64(n)
		if p.cur.Kind == TokArrow {
			p.advance()
			t, _ := p.parseType()
			inst.Type = t
		} else {
			inst.Type = il.T(il.Ptr)
		}
	case "call":
		inst.Op = il.OpCall
		if _, ok := p.expect(TokAt, "'@'"); !ok {
			p.skipToNewline()
			return
		}
		nameTok, ok := p.expect(TokIdent, "callee name")
		if !ok {
			p.skipToNewline()
			return
		}
		inst.CalleeName = nameTok.Literal
		p.expect(TokLParen, "'('")
		for p.cur.Kind != TokRParen && p.cur.Kind != TokEOF && p.cur.Kind != TokNewline {
			v, ok := p.parseValue()
			if !ok {
				break
			}
			inst.Operands = append(inst.Operands, v)
			if p.cur.Kind == TokComma {
				p.advance()
			}
		}
		p.expect(TokRParen, "')'")
		if p.cur.Kind == TokArrow {
			p.advance()
			t, _ := p.parseType()
			inst.Type = t
			inst.HasResult = hasResult && t.Kind != il.Void
		}
	case "addr_of":
		inst.Op = il.OpAddrOf
		if _, ok := p.expect(TokAt, "'@'"); !ok {
			p.skipToNewline()
			return
		}
		nameTok, _ := p.expect(TokIdent, "global name")
		inst.GlobalName = nameTok.Literal
		inst.Type = il.T(il.Ptr)
	case "const_str":
		inst.Op = il.OpConstStr
		if _, ok := p.expect(TokAt, "'@'"); !ok {
			p.skipToNewline()
			return
		}
		nameTok, _ := p.expect(TokIdent, "global name")
		inst.GlobalName = nameTok.Literal
		inst.Type = il.T(il.Str)
	case "const_null":
		inst.Op = il.OpConstNull
		inst.Type = il.T(il.Ptr)
	default:
		op, ok := il.ParseOp(mnemonic)
		if !ok {
			p.errorf("", "unknown mnemonic %q", mnemonic)
			p.skipToNewline()
			return
		}
		inst.Op = op
		for p.cur.Kind != TokNewline && p.cur.Kind != TokEOF && p.cur.Kind != TokArrow && p.cur.Kind != TokRBrace {
			v, ok := p.parseValue()
			if !ok {
				break
			}
			inst.Operands = append(inst.Operands, v)
			if p.cur.Kind == TokComma {
				p.advance()
			} else {
				break
			}
		}
		if p.cur.Kind == TokArrow {
			p.advance()
			t, _ := p.parseType()
			inst.Type = t
		}
	}

	p.blk.Instructions = append(p.blk.Instructions, inst)
	p.skipToNewline()
}

// pendingLoc/takeLoc implement the ".loc" directive's "sticky until the
// next directive" semantics: it attaches to every following instruction in
// the block until overridden.
func (p *Parser) takeLoc(line int) il.Loc {
	if p.pendingLoc != nil {
		return *p.pendingLoc
	}
	return il.Loc{FileID: 1, Line: line, Col: 1}
}
