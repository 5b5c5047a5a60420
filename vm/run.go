package vm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Run drives the CPU to completion, stopping on HLT, a decode/runtime
// error, or ctx cancellation. Cancellation is checked once per instruction,
// matching the loop's natural step granularity.
func (c *CPU) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		halted, err := c.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// RunDebug drives the CPU one instruction at a time, printing state
// between steps and accepting commands from in: "n"/"next" to single-step,
// "r"/"run" to free-run to the next breakpoint or halt, "b <addr>" to
// toggle a breakpoint, "q"/"quit" to stop early.
func (c *CPU) RunDebug(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "commands: n/next, r/run, b <addr>, q/quit")
	c.printState(out)

	reader := bufio.NewReader(in)
	running := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if running {
			if _, atBreak := c.Breakpoints[c.GetRegisterIndexed(ipIdx)]; atBreak {
				fmt.Fprintln(out, "breakpoint hit")
				c.printState(out)
				running = false
				continue
			}

			halted, err := c.Step()
			if err != nil {
				return err
			}
			if halted {
				return nil
			}
			continue
		}

		fmt.Fprint(out, "\n-> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		line = strings.ToLower(strings.TrimSpace(line))

		switch {
		case line == "n" || line == "next":
			halted, err := c.Step()
			c.printState(out)
			if err != nil {
				return err
			}
			if halted {
				return nil
			}
		case line == "r" || line == "run":
			running = true
		case line == "q" || line == "quit":
			return nil
		case strings.HasPrefix(line, "b"):
			addrStr := strings.TrimSpace(strings.TrimPrefix(line, "b"))
			addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 16)
			if err != nil {
				fmt.Fprintln(out, "unrecognized address:", addrStr)
				continue
			}
			if _, ok := c.Breakpoints[uint16(addr)]; ok {
				delete(c.Breakpoints, uint16(addr))
			} else {
				c.Breakpoints[uint16(addr)] = struct{}{}
			}
		default:
			fmt.Fprintln(out, "unrecognized command:", line)
		}
	}
}

func (c *CPU) printState(out io.Writer) {
	fmt.Fprintf(out, "ip=%#04x acc=%#04x sp=%#04x fp=%#04x\n", c.GetRegisterIndexed(ipIdx), c.GetRegisterIndexed(accIdx), c.GetRegisterIndexed(spIdx), c.GetRegisterIndexed(fpIdx))
	for _, idx := range generalPurposeRegs {
		fmt.Fprintf(out, "%s=%#04x ", RegisterName(idx), c.GetRegisterIndexed(idx))
	}
	fmt.Fprintln(out)
}

// Mapper exposes the CPU's memory mapper.
func (c *CPU) Mapper() *MemoryMapper {
	return c.mapper
}
