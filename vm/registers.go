package vm

// registerNames fixes both the display name and the index of each register
// in the 24-byte register file. Index order matters: it is the same order
// the assembler's register token maps into a single encoded byte.
var registerNames = [...]string{
	"ip", "acc", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "sp", "fp",
}

const numRegisters = len(registerNames)

var registerIndex = func() map[string]int {
	m := make(map[string]int, numRegisters)
	for i, name := range registerNames {
		m[name] = i
	}
	return m
}()

// RegisterIndex resolves a register name (e.g. "r1", "sp") to its stable
// index, or -1 if unknown.
func RegisterIndex(name string) int {
	if idx, ok := registerIndex[name]; ok {
		return idx
	}
	return -1
}

// RegisterName is the inverse of RegisterIndex, used for diagnostics.
func RegisterName(idx int) string {
	if idx < 0 || idx >= numRegisters {
		return "?"
	}
	return registerNames[idx]
}
