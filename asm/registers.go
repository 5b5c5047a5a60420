package asm

import "strings"

var validRegisterNames = map[string]struct{}{
	"r1": {}, "r2": {}, "r3": {}, "r4": {}, "r5": {}, "r6": {}, "r7": {}, "r8": {},
	"sp": {}, "fp": {}, "ip": {}, "acc": {},
}

// parseRegister matches one of the known register tags case-insensitively.
func parseRegister(cur *cursor) (string, error) {
	cur.skipSpace()
	start := cur.pos
	for !cur.eof() && isAlphaNum(cur.src[cur.pos]) {
		cur.pos++
	}
	if cur.pos == start {
		return "", cur.errf("expected register")
	}
	tok := strings.ToLower(cur.src[start:cur.pos])
	if _, ok := validRegisterNames[tok]; !ok {
		cur.pos = start
		return "", cur.errf("not a register: %q", tok)
	}
	return tok, nil
}

// parsePointerRegister parses "&" followed directly by a register tag,
// used by the reg-ptr-reg and lit-offset-reg operand shapes.
func parsePointerRegister(cur *cursor) (string, error) {
	cur.skipSpace()
	if !cur.consumeIf('&') {
		return "", cur.errf("expected '&'")
	}
	return parseRegister(cur)
}
