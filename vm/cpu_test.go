package vm

import (
	"context"
	"testing"
)

func newTestCPU(t *testing.T, program []byte) *CPU {
	t.Helper()
	mem := NewByteMemory(0x10000)
	assert(t, mem.LoadAt(0, program) == nil, "failed to load program")

	mapper := NewMemoryMapper()
	assert(t, mapper.Map(mem, 0, 0xFFFF, false) == nil, "failed to map memory")

	return NewCPU(mapper)
}

// TestArithmeticAndStore covers scenario S1: two literals moved into
// registers, added, and the accumulator stored back to memory.
func TestArithmeticAndStore(t *testing.T) {
	program := []byte{
		byte(MovLitReg), 0x12, 0x34, byte(r1Idx),
		byte(MovLitReg), 0xAB, 0xCD, byte(r2Idx),
		byte(AddRegReg), byte(r1Idx), byte(r2Idx),
		byte(MovRegMem), byte(accIdx), 0x01, 0x00,
		byte(Hlt),
	}
	c := newTestCPU(t, program)
	assert(t, c.Run(context.Background()) == nil, "unexpected run error")

	assert(t, c.GetRegisterIndexed(r1Idx) == 0x1234, "r1 = %#04x", c.GetRegisterIndexed(r1Idx))
	assert(t, c.GetRegisterIndexed(r2Idx) == 0xABCD, "r2 = %#04x", c.GetRegisterIndexed(r2Idx))
	assert(t, c.GetRegisterIndexed(accIdx) == 0xBE01, "acc = %#04x", c.GetRegisterIndexed(accIdx))

	v, err := c.mapper.Get16(0x0100)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, v == 0xBE01, "mem[0x0100] = %#04x", v)
}

// TestCountingLoop covers scenario S2: increment a memory counter in a
// loop until it reaches a target value.
func TestCountingLoop(t *testing.T) {
	program := []byte{
		byte(MovMemReg), 0x01, 0x00, byte(r1Idx), // 0
		byte(MovLitReg), 0x00, 0x01, byte(r2Idx), // 4
		byte(AddRegReg), byte(r1Idx), byte(r2Idx), // 8
		byte(MovRegMem), byte(accIdx), 0x01, 0x00, // 11
		byte(JmpNotEq), 0x00, 0x03, 0x00, 0x00, // 15
		byte(Hlt), // 20
	}
	c := newTestCPU(t, program)
	assert(t, c.Run(context.Background()) == nil, "unexpected run error")

	v, err := c.mapper.Get16(0x0100)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, v == 0x0003, "mem[0x0100] = %#04x, want 0x0003", v)
}

// TestStackPushPop covers scenario S3: two values pushed then popped back
// in reverse order.
func TestStackPushPop(t *testing.T) {
	program := []byte{
		byte(MovLitReg), 0x51, 0x51, byte(r1Idx),
		byte(MovLitReg), 0x42, 0x42, byte(r2Idx),
		byte(PshReg), byte(r1Idx),
		byte(PshReg), byte(r2Idx),
		byte(Pop), byte(r1Idx),
		byte(Pop), byte(r2Idx),
		byte(Hlt),
	}
	c := newTestCPU(t, program)
	spBefore := c.GetRegisterIndexed(spIdx)
	fpBefore := c.GetRegisterIndexed(fpIdx)

	assert(t, c.Run(context.Background()) == nil, "unexpected run error")

	assert(t, c.GetRegisterIndexed(r1Idx) == 0x4242, "r1 = %#04x", c.GetRegisterIndexed(r1Idx))
	assert(t, c.GetRegisterIndexed(r2Idx) == 0x5151, "r2 = %#04x", c.GetRegisterIndexed(r2Idx))
	assert(t, c.GetRegisterIndexed(spIdx) == spBefore, "sp not restored: got %#04x want %#04x", c.GetRegisterIndexed(spIdx), spBefore)
	assert(t, c.GetRegisterIndexed(fpIdx) == fpBefore, "fp not restored: got %#04x want %#04x", c.GetRegisterIndexed(fpIdx), fpBefore)
}

// TestCallReturnPreservesRegisters covers scenario S4: registers r1-r8 and
// the stack pointer survive a call into a subroutine that overwrites them.
func TestCallReturnPreservesRegisters(t *testing.T) {
	const subAddr = 15
	program := []byte{
		byte(MovLitReg), 0x12, 0x34, byte(r1Idx), // 0
		byte(MovLitReg), 0x56, 0x78, byte(r4Idx), // 4
		byte(PshLit), 0x00, 0x00, // 8: args length
		byte(CalLit), 0x00, subAddr, // 11
		byte(Hlt), // 14

		byte(MovLitReg), 0x99, 0x99, byte(r1Idx), // 15
		byte(MovLitReg), 0x88, 0x88, byte(r8Idx), // 19
		byte(Ret), // 23
	}
	c := newTestCPU(t, program)
	spBefore := c.GetRegisterIndexed(spIdx)

	assert(t, c.Run(context.Background()) == nil, "unexpected run error")

	assert(t, c.GetRegisterIndexed(r1Idx) == 0x1234, "r1 = %#04x, want 0x1234", c.GetRegisterIndexed(r1Idx))
	assert(t, c.GetRegisterIndexed(r4Idx) == 0x5678, "r4 = %#04x, want 0x5678", c.GetRegisterIndexed(r4Idx))
	assert(t, c.GetRegisterIndexed(spIdx) == spBefore, "sp not restored: got %#04x want %#04x", c.GetRegisterIndexed(spIdx), spBefore)
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	program := []byte{0x99}
	c := newTestCPU(t, program)
	err := c.Run(context.Background())
	assert(t, err != nil, "expected error for unknown opcode")
}

func TestFetchRegisterIndexWraps(t *testing.T) {
	program := []byte{byte(numRegisters + r1Idx)}
	c := newTestCPU(t, program)
	off, err := c.FetchRegisterIndex()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, off == uint16(r1Idx*2), "expected wraparound to r1 offset, got %d", off)
}
