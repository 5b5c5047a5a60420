package main

import (
	"fmt"
	"os"

	"vm16/vm"
)

const (
	ramSize    = 0x10000
	screenBase = 0x3000
	screenEnd  = 0x30FF
)

// buildMachine loads img at address 0 into a freshly mapped address space
// and mounts a screen device above the program/data area, mirroring the
// memory layout vm16 programs are written against.
func buildMachine(img []byte) (*vm.CPU, error) {
	mem := vm.NewByteMemory(ramSize)
	if err := mem.LoadAt(0, img); err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	mapper := vm.NewMemoryMapper()
	if err := mapper.Map(mem, 0, ramSize-1, false); err != nil {
		return nil, fmt.Errorf("mapping memory: %w", err)
	}

	screen := vm.NewScreenDevice()
	if err := mapper.Map(screen, screenBase, screenEnd, true); err != nil {
		return nil, fmt.Errorf("mapping screen device: %w", err)
	}

	return vm.NewCPU(mapper), nil
}

func readImage(path string) ([]byte, error) {
	img, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %q: %w", path, err)
	}
	return img, nil
}

func printRegisters(cpu *vm.CPU) {
	snap := cpu.Snapshot()
	fmt.Printf("ip=%#04x acc=%#04x sp=%#04x fp=%#04x\n", snap["ip"], snap["acc"], snap["sp"], snap["fp"])
	for i := 1; i <= 8; i++ {
		name := fmt.Sprintf("r%d", i)
		fmt.Printf("%s=%#04x ", name, snap[name])
	}
	fmt.Println()
}
