package asm

import (
	"fmt"
	"strings"
)

type shapeParser func(mnemonic, operands string) (*Instruction, error)

func shapeNoArg(mnemonic, operands string) (*Instruction, error) {
	if strings.TrimSpace(operands) != "" {
		return nil, fmt.Errorf("%s takes no operands", mnemonic)
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindNoArg}, nil
}

func shapeLit(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	cur.skipSpace()
	lit, err := parseLiteralExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindLit, Lit: lit}, nil
}

func shapeReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	reg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindReg, Reg1: reg}, nil
}

func shapeLitReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	cur.skipSpace()
	lit, err := parseLiteralExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	reg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindLitReg, Lit: lit, Reg1: reg}, nil
}

func shapeRegReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	reg1, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	reg2, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindRegReg, Reg1: reg1, Reg2: reg2}, nil
}

func shapeRegLit(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	reg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	lit, err := parseLiteralExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindRegLit, Reg1: reg, Lit: lit}, nil
}

func shapeLitMem(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	cur.skipSpace()
	lit, err := parseLiteralExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	addr, err := parseAddressExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindLitMem, Lit: lit, Addr: addr}, nil
}

func shapeMemReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	addr, err := parseAddressExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	reg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindMemReg, Addr: addr, Reg1: reg}, nil
}

func shapeRegMem(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	reg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	addr, err := parseAddressExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindRegMem, Reg1: reg, Addr: addr}, nil
}

func shapeRegPtrReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	ptrReg, err := parsePointerRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	dstReg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindRegPtrReg, Reg1: ptrReg, Reg2: dstReg}, nil
}

func shapeLitOffsetReg(mnemonic, operands string) (*Instruction, error) {
	cur := newCursor(operands)
	cur.skipSpace()
	lit, err := parseLiteralExpr(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	baseReg, err := parsePointerRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.expectComma(); err != nil {
		return nil, err
	}
	dstReg, err := parseRegister(cur)
	if err != nil {
		return nil, err
	}
	if err := cur.requireEOF(); err != nil {
		return nil, err
	}
	return &Instruction{Mnemonic: mnemonic, Kind: KindLitOffsetReg, Lit: lit, Reg1: baseReg, Reg2: dstReg}, nil
}

// mnemonicShapes lists, for each supported mnemonic, the operand shapes to
// try in order. The first shape that fully consumes the operand text wins.
// mov's ordering in particular resolves the ambiguity between its many
// forms: lit-mem, lit-offset-reg, lit-reg, mem-reg, reg-mem, reg-reg,
// reg-ptr-reg.
var mnemonicShapes = map[string][]shapeParser{
	"mov": {shapeLitMem, shapeLitOffsetReg, shapeLitReg, shapeMemReg, shapeRegMem, shapeRegReg, shapeRegPtrReg},
	"add": {shapeRegReg, shapeLitReg},
	"sub": {shapeLitReg, shapeRegReg, shapeRegLit},
	"mul": {shapeLitReg, shapeRegReg},
	"inc": {shapeReg},
	"dec": {shapeReg},
	"not": {shapeReg},
	"lsf": {shapeRegReg, shapeRegLit},
	"rsf": {shapeRegReg, shapeRegLit},
	"and": {shapeRegReg, shapeRegLit},
	"or":  {shapeRegReg, shapeRegLit},
	"xor": {shapeRegReg, shapeRegLit},
	"jmp": {shapeLitMem},
	"jne": {shapeRegMem},
	"jeq": {shapeRegMem, shapeLitMem},
	"jlt": {shapeRegMem, shapeLitMem},
	"jgt": {shapeRegMem, shapeLitMem},
	"jle": {shapeRegMem, shapeLitMem},
	"jge": {shapeRegMem, shapeLitMem},
	"psh": {shapeLit, shapeReg},
	"pop": {shapeReg},
	"cal": {shapeLit, shapeReg},
	"ret": {shapeNoArg},
	"hlt": {shapeNoArg},
}

// ParseInstruction parses one assembly line with the label/comment
// already stripped. Mnemonics match case-insensitively and must be
// followed by whitespace (or end the line, for no-arg forms).
func ParseInstruction(line string) (*Instruction, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("empty instruction")
	}

	mnemonicEnd := strings.IndexAny(line, " \t")
	var mnemonicRaw, operands string
	if mnemonicEnd < 0 {
		mnemonicRaw = line
	} else {
		mnemonicRaw = line[:mnemonicEnd]
		operands = line[mnemonicEnd+1:]
	}
	mnemonic := strings.ToLower(mnemonicRaw)

	shapes, ok := mnemonicShapes[mnemonic]
	if !ok {
		return nil, fmt.Errorf("unknown mnemonic %q", mnemonicRaw)
	}

	var firstErr error
	for _, shape := range shapes {
		instr, err := shape(mnemonic, operands)
		if err == nil {
			return instr, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("no operand shape for %q matched %q: %w", mnemonic, operands, firstErr)
}
