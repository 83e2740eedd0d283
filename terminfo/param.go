// Copyright © 2026 scrim contributors
// SPDX-License-Identifier: MIT
//
// File: terminfo/param.go
// Summary: Compiler and stack evaluator for parameterized capability templates.

package terminfo

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Parameterized capabilities use the terminfo % language: a stack machine
// with push/arithmetic/conditional operators. Templates are compiled once
// into an instruction list and evaluated per call, so the render engine can
// both expand a template and measure its emitted byte length without string
// formatting on the hot path.

type opKind uint8

const (
	opText opKind = iota
	opFormat
	opPushParam
	opPushInt
	opIncr
	opAdd
	opSub
	opMul
	opDiv
	opMod
	opBitAnd
	opBitOr
	opBitXor
	opLogAnd
	opLogOr
	opEq
	opLt
	opGt
	opNot
	opCompl
	opSetVar
	opGetVar
	opCond
)

type condBranch struct {
	cond program
	body program
}

type instr struct {
	kind opKind
	text string // opText
	num  int    // opPushParam (0-based), opPushInt, opSetVar/opGetVar (variable)

	// format spec for opFormat
	verb  byte
	flags string
	width int
	prec  int

	branches []condBranch // opCond
	elseBody program      // opCond
}

type program []instr

var (
	progMu    sync.Mutex
	progCache = map[string]program{}
)

// TParm expands a parameterized capability template against integer
// parameters. Expansion is best-effort: malformed or unsupported operators
// expand to nothing, matching the "do your best" capability policy.
func TParm(tpl string, params ...int) string {
	if tpl == "" {
		return ""
	}
	prog := compileCached(tpl)

	var ps [9]int
	copy(ps[:], params)

	var sb strings.Builder
	vars := map[int]int{}
	prog.eval(&sb, &ps, vars)
	return sb.String()
}

func compileCached(tpl string) program {
	progMu.Lock()
	defer progMu.Unlock()
	if p, ok := progCache[tpl]; ok {
		return p
	}
	p, _ := compile(tpl, 0)
	progCache[tpl] = p
	return p
}

// compile parses tpl starting at pos into a program, stopping at %t, %e or
// %; so conditional bodies can be compiled recursively. Returns the program
// and the position just past the terminator (or len(tpl)).
func compile(tpl string, pos int) (program, int) {
	var prog program
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			prog = append(prog, instr{kind: opText, text: lit.String()})
			lit.Reset()
		}
	}

	i := pos
	for i < len(tpl) {
		ch := tpl[i]

		// Padding markers like $<50/> carry timing hints for hardware
		// terminals; strip them.
		if ch == '$' && i+1 < len(tpl) && tpl[i+1] == '<' {
			if end := strings.IndexByte(tpl[i:], '>'); end >= 0 {
				i += end + 1
				continue
			}
		}

		if ch != '%' {
			lit.WriteByte(ch)
			i++
			continue
		}
		i++
		if i >= len(tpl) {
			break
		}

		c := tpl[i]
		i++
		switch {
		case c == '%':
			lit.WriteByte('%')
		case c == 'i':
			flush()
			prog = append(prog, instr{kind: opIncr})
		case c == 'p' && i < len(tpl) && tpl[i] >= '1' && tpl[i] <= '9':
			flush()
			prog = append(prog, instr{kind: opPushParam, num: int(tpl[i] - '1')})
			i++
		case c == '{':
			end := strings.IndexByte(tpl[i:], '}')
			if end < 0 {
				i = len(tpl)
				break
			}
			n, _ := strconv.Atoi(tpl[i : i+end])
			flush()
			prog = append(prog, instr{kind: opPushInt, num: n})
			i += end + 1
		case c == '\'':
			if i < len(tpl) {
				flush()
				prog = append(prog, instr{kind: opPushInt, num: int(tpl[i])})
				i++
				if i < len(tpl) && tpl[i] == '\'' {
					i++
				}
			}
		case c == 'P' && i < len(tpl):
			flush()
			prog = append(prog, instr{kind: opSetVar, num: int(tpl[i])})
			i++
		case c == 'g' && i < len(tpl):
			flush()
			prog = append(prog, instr{kind: opGetVar, num: int(tpl[i])})
			i++
		case c == '+':
			flush()
			prog = append(prog, instr{kind: opAdd})
		case c == '-':
			flush()
			prog = append(prog, instr{kind: opSub})
		case c == '*':
			flush()
			prog = append(prog, instr{kind: opMul})
		case c == '/':
			flush()
			prog = append(prog, instr{kind: opDiv})
		case c == 'm':
			flush()
			prog = append(prog, instr{kind: opMod})
		case c == '&':
			flush()
			prog = append(prog, instr{kind: opBitAnd})
		case c == '|':
			flush()
			prog = append(prog, instr{kind: opBitOr})
		case c == '^':
			flush()
			prog = append(prog, instr{kind: opBitXor})
		case c == 'A':
			flush()
			prog = append(prog, instr{kind: opLogAnd})
		case c == 'O':
			flush()
			prog = append(prog, instr{kind: opLogOr})
		case c == '=':
			flush()
			prog = append(prog, instr{kind: opEq})
		case c == '<':
			flush()
			prog = append(prog, instr{kind: opLt})
		case c == '>':
			flush()
			prog = append(prog, instr{kind: opGt})
		case c == '!':
			flush()
			prog = append(prog, instr{kind: opNot})
		case c == '~':
			flush()
			prog = append(prog, instr{kind: opCompl})
		case c == '?':
			flush()
			branches, elseBody, next := compileCond(tpl, i)
			prog = append(prog, instr{kind: opCond, branches: branches, elseBody: elseBody})
			i = next
		case c == 't' || c == 'e' || c == ';':
			// Terminator for a conditional sub-program; hand control back.
			flush()
			return prog, i
		default:
			// Format spec: optional ':', flags, width, precision, verb.
			j := i - 1
			spec, verb, next, ok := parseFormat(tpl, j)
			if ok {
				flush()
				prog = append(prog, instr{
					kind:  opFormat,
					verb:  verb,
					flags: spec.flags,
					width: spec.width,
					prec:  spec.prec,
				})
				i = next
			}
			// Unknown operator: emit nothing.
		}
	}
	flush()
	return prog, i
}

// compileCond parses the body of a %? ... %; construct beginning just after
// the '?'. Chained else-if arms (%e cond %t body) fold into extra branches.
func compileCond(tpl string, pos int) ([]condBranch, program, int) {
	var branches []condBranch
	var elseBody program

	i := pos
	for {
		cond, next := compile(tpl, i)
		i = next
		if i == 0 || i > len(tpl) || i-1 >= len(tpl) || tpl[i-1] != 't' {
			// Malformed: no %t after condition. Treat what we parsed as a
			// lone else body and stop.
			elseBody = cond
			break
		}
		body, next2 := compile(tpl, i)
		i = next2
		branches = append(branches, condBranch{cond: cond, body: body})

		if i-1 < len(tpl) && tpl[i-1] == ';' {
			break
		}
		if i-1 >= len(tpl) {
			break
		}
		// tpl[i-1] == 'e': either an else body or a chained condition.
		arm, next3 := compile(tpl, i)
		i = next3
		if i-1 < len(tpl) && tpl[i-1] == 't' {
			// Chained else-if: arm was the next condition.
			body2, next4 := compile(tpl, i)
			i = next4
			branches = append(branches, condBranch{cond: arm, body: body2})
			if i-1 < len(tpl) && tpl[i-1] == ';' {
				break
			}
			if i-1 >= len(tpl) {
				break
			}
			continue
		}
		elseBody = arm
		break
	}
	return branches, elseBody, i
}

type formatSpec struct {
	flags string
	width int
	prec  int
}

func parseFormat(tpl string, pos int) (formatSpec, byte, int, bool) {
	spec := formatSpec{prec: -1}
	i := pos
	if i < len(tpl) && tpl[i] == ':' {
		i++
	}
	for i < len(tpl) && strings.IndexByte("-+ #0", tpl[i]) >= 0 {
		spec.flags += string(tpl[i])
		i++
	}
	start := i
	for i < len(tpl) && tpl[i] >= '0' && tpl[i] <= '9' {
		i++
	}
	if i > start {
		spec.width, _ = strconv.Atoi(tpl[start:i])
	}
	if i < len(tpl) && tpl[i] == '.' {
		i++
		start = i
		for i < len(tpl) && tpl[i] >= '0' && tpl[i] <= '9' {
			i++
		}
		spec.prec, _ = strconv.Atoi(tpl[start:i])
	}
	if i >= len(tpl) {
		return spec, 0, i, false
	}
	switch tpl[i] {
	case 'd', 'o', 'x', 'X', 's', 'c':
		return spec, tpl[i], i + 1, true
	}
	return spec, 0, i + 1, false
}

type intStack []int

func (s *intStack) push(v int) { *s = append(*s, v) }

func (s *intStack) pop() int {
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

func (p program) eval(sb *strings.Builder, params *[9]int, vars map[int]int) {
	var st intStack
	p.run(sb, params, vars, &st)
}

func (p program) run(sb *strings.Builder, params *[9]int, vars map[int]int, st *intStack) {
	for _, in := range p {
		switch in.kind {
		case opText:
			sb.WriteString(in.text)
		case opFormat:
			v := st.pop()
			writeFormatted(sb, in, v)
		case opPushParam:
			st.push(params[in.num])
		case opPushInt:
			st.push(in.num)
		case opIncr:
			params[0]++
			params[1]++
		case opAdd:
			b, a := st.pop(), st.pop()
			st.push(a + b)
		case opSub:
			b, a := st.pop(), st.pop()
			st.push(a - b)
		case opMul:
			b, a := st.pop(), st.pop()
			st.push(a * b)
		case opDiv:
			b, a := st.pop(), st.pop()
			if b != 0 {
				st.push(a / b)
			} else {
				st.push(0)
			}
		case opMod:
			b, a := st.pop(), st.pop()
			if b != 0 {
				st.push(a % b)
			} else {
				st.push(0)
			}
		case opBitAnd:
			b, a := st.pop(), st.pop()
			st.push(a & b)
		case opBitOr:
			b, a := st.pop(), st.pop()
			st.push(a | b)
		case opBitXor:
			b, a := st.pop(), st.pop()
			st.push(a ^ b)
		case opLogAnd:
			b, a := st.pop(), st.pop()
			st.push(boolInt(a != 0 && b != 0))
		case opLogOr:
			b, a := st.pop(), st.pop()
			st.push(boolInt(a != 0 || b != 0))
		case opEq:
			b, a := st.pop(), st.pop()
			st.push(boolInt(a == b))
		case opLt:
			b, a := st.pop(), st.pop()
			st.push(boolInt(a < b))
		case opGt:
			b, a := st.pop(), st.pop()
			st.push(boolInt(a > b))
		case opNot:
			st.push(boolInt(st.pop() == 0))
		case opCompl:
			st.push(^st.pop())
		case opSetVar:
			vars[in.num] = st.pop()
		case opGetVar:
			st.push(vars[in.num])
		case opCond:
			taken := false
			for _, br := range in.branches {
				br.cond.run(sb, params, vars, st)
				if st.pop() != 0 {
					br.body.run(sb, params, vars, st)
					taken = true
					break
				}
			}
			if !taken {
				in.elseBody.run(sb, params, vars, st)
			}
		}
	}
}

func writeFormatted(sb *strings.Builder, in instr, v int) {
	switch in.verb {
	case 'd', 'o', 'x', 'X':
		verb := "%"
		verb += in.flags
		if in.width > 0 {
			verb += strconv.Itoa(in.width)
		}
		verb += string(in.verb)
		fmt.Fprintf(sb, verb, v)
	case 'c':
		if v > 0 {
			sb.WriteByte(byte(v))
		}
	case 's':
		// Integer-only evaluator; render the value as its decimal form.
		sb.WriteString(strconv.Itoa(v))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
