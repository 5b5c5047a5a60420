package asm

import (
	"fmt"

	"vm16/vm"
)

var opcodeTable = map[string]map[InstrKind]vm.Opcode{
	"mov": {
		KindLitReg:       vm.MovLitReg,
		KindRegReg:       vm.MovRegReg,
		KindRegMem:       vm.MovRegMem,
		KindMemReg:       vm.MovMemReg,
		KindLitMem:       vm.MovLitMem,
		KindRegPtrReg:    vm.MovRegPtrReg,
		KindLitOffsetReg: vm.MovLitOffReg,
	},
	"add": {KindRegReg: vm.AddRegReg, KindLitReg: vm.AddLitReg},
	"sub": {KindLitReg: vm.SubLitReg, KindRegLit: vm.SubRegLit, KindRegReg: vm.SubRegReg},
	"mul": {KindLitReg: vm.MulLitReg, KindRegReg: vm.MulRegReg},
	"inc": {KindReg: vm.IncReg},
	"dec": {KindReg: vm.DecReg},
	"not": {KindReg: vm.Not},
	"lsf": {KindRegReg: vm.LsfRegReg, KindRegLit: vm.LsfRegLit},
	"rsf": {KindRegReg: vm.RsfRegReg, KindRegLit: vm.RsfRegLit},
	"and": {KindRegReg: vm.AndRegReg, KindRegLit: vm.AndRegLit},
	"or":  {KindRegReg: vm.OrRegReg, KindRegLit: vm.OrRegLit},
	"xor": {KindRegReg: vm.XorRegReg, KindRegLit: vm.XorRegLit},
	"jmp": {KindLitMem: vm.JmpNotEq},
	"jne": {KindRegMem: vm.JneReg},
	"jeq": {KindRegMem: vm.JeqReg, KindLitMem: vm.JeqLit},
	"jlt": {KindRegMem: vm.JltReg, KindLitMem: vm.JltLit},
	"jgt": {KindRegMem: vm.JgtReg, KindLitMem: vm.JgtLit},
	"jle": {KindRegMem: vm.JleReg, KindLitMem: vm.JleLit},
	"jge": {KindRegMem: vm.JgeReg, KindLitMem: vm.JgeLit},
	"psh": {KindLit: vm.PshLit, KindReg: vm.PshReg},
	"pop": {KindReg: vm.Pop},
	"cal": {KindLit: vm.CalLit, KindReg: vm.CalReg},
	"ret": {KindNoArg: vm.Ret},
	"hlt": {KindNoArg: vm.Hlt},
}

func opcodeFor(mnemonic string, kind InstrKind) (vm.Opcode, error) {
	shapes, ok := opcodeTable[mnemonic]
	if !ok {
		return 0, fmt.Errorf("no opcode table entry for mnemonic %q", mnemonic)
	}
	op, ok := shapes[kind]
	if !ok {
		return 0, fmt.Errorf("mnemonic %q does not support this operand shape", mnemonic)
	}
	return op, nil
}

// operandSize is the number of bytes following the opcode for a given
// shape, independent of mnemonic.
func operandSize(kind InstrKind) int {
	switch kind {
	case KindNoArg:
		return 0
	case KindLit:
		return 2
	case KindReg:
		return 1
	case KindLitReg:
		return 3
	case KindRegReg:
		return 2
	case KindRegLit:
		return 3
	case KindLitMem:
		return 4
	case KindMemReg:
		return 3
	case KindRegMem:
		return 3
	case KindRegPtrReg:
		return 2
	case KindLitOffsetReg:
		return 4
	default:
		return 0
	}
}

// InstructionSize is the full wire size (opcode byte included) of instr,
// used to resolve label addresses before the actual encode pass runs.
func InstructionSize(instr *Instruction) int {
	return 1 + operandSize(instr.Kind)
}

// evalExpr folds an expression to its 16-bit value at codegen time.
// Variable references are resolved against vars (which holds both
// assembler variables and label addresses); an unresolved name is a
// codegen error naming the identifier.
func evalExpr(e *Expr, vars map[string]uint16) (uint16, error) {
	switch e.Kind {
	case ExprHexLiteral:
		return e.Hex, nil
	case ExprAddress:
		return e.Addr, nil
	case ExprVariable:
		v, ok := vars[e.Name]
		if !ok {
			return 0, fmt.Errorf("unresolved variable %q", e.Name)
		}
		return v, nil
	case ExprBracket, ExprSquareBracket:
		return evalExpr(e.Inner, vars)
	case ExprBinary:
		l, err := evalExpr(e.Left, vars)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(e.Right, vars)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case OpPlus:
			return l + r, nil
		case OpMinus:
			return l - r, nil
		case OpMultiply:
			return l * r, nil
		default:
			return 0, fmt.Errorf("unknown operator %v", e.Op)
		}
	default:
		return 0, fmt.Errorf("unknown expression kind %v", e.Kind)
	}
}

func regByte(name string) byte {
	return byte(vm.RegisterIndex(name))
}

func appendU16(out []byte, v uint16) []byte {
	return append(out, byte(v>>8), byte(v))
}

// Assemble lowers a parsed instruction stream into the CPU's byte
// encoding. vars resolves every Variable expression encountered (the
// caller merges label addresses and any assembler variables into one
// map before calling this).
func Assemble(instrs []*Instruction, vars map[string]uint16) ([]byte, error) {
	out := make([]byte, 0, len(instrs)*3)

	for _, instr := range instrs {
		op, err := opcodeFor(instr.Mnemonic, instr.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(op))

		switch instr.Kind {
		case KindNoArg:
			// no operands

		case KindLit:
			v, err := evalExpr(instr.Lit, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, v)

		case KindReg:
			out = append(out, regByte(instr.Reg1))

		case KindLitReg:
			v, err := evalExpr(instr.Lit, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, v)
			out = append(out, regByte(instr.Reg1))

		case KindRegReg:
			out = append(out, regByte(instr.Reg1), regByte(instr.Reg2))

		case KindRegLit:
			out = append(out, regByte(instr.Reg1))
			v, err := evalExpr(instr.Lit, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, v)

		case KindLitMem:
			v, err := evalExpr(instr.Lit, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, v)
			a, err := evalExpr(instr.Addr, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, a)

		case KindMemReg:
			a, err := evalExpr(instr.Addr, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, a)
			out = append(out, regByte(instr.Reg1))

		case KindRegMem:
			out = append(out, regByte(instr.Reg1))
			a, err := evalExpr(instr.Addr, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, a)

		case KindRegPtrReg:
			out = append(out, regByte(instr.Reg1), regByte(instr.Reg2))

		case KindLitOffsetReg:
			v, err := evalExpr(instr.Lit, vars)
			if err != nil {
				return nil, err
			}
			out = appendU16(out, v)
			out = append(out, regByte(instr.Reg1), regByte(instr.Reg2))

		default:
			return nil, fmt.Errorf("unhandled instruction kind %v", instr.Kind)
		}
	}

	return out, nil
}
