package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	cli "gopkg.in/urfave/cli.v2"
)

func debugCommand() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "single-step an assembled image interactively",
		ArgsUsage: "<image>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "read single keystrokes instead of Enter-terminated commands",
			},
			&cli.StringFlag{
				Name:  "break",
				Usage: "preload a breakpoint address (hex, e.g. 0x0100); required in --raw mode to set one",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("debug: expected exactly one image file")
			}
			return runDebug(c.Args().Get(0), c.Bool("raw"), c.String("break"))
		},
	}
}

func runDebug(path string, raw bool, breakAddr string) error {
	img, err := readImage(path)
	if err != nil {
		return err
	}

	cpu, err := buildMachine(img)
	if err != nil {
		return err
	}

	if breakAddr != "" {
		addr, err := strconv.ParseUint(strings.TrimPrefix(breakAddr, "0x"), 16, 16)
		if err != nil {
			return fmt.Errorf("debug: bad --break address %q: %w", breakAddr, err)
		}
		cpu.Breakpoints[uint16(addr)] = struct{}{}
	}

	if !raw {
		return cpu.RunDebug(context.Background(), os.Stdin, os.Stdout)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("debug: entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	return cpu.RunDebug(context.Background(), &rawKeyReader{}, os.Stdout)
}

// rawKeyReader adapts a raw-mode stdin into the line-oriented command
// protocol RunDebug expects: each keypress is delivered as if it were a
// complete Enter-terminated line, so "n", "r", and "q" take effect
// immediately without waiting for Enter. Breakpoints are not settable this
// way (raw mode has no room for a multi-character "b <addr>" command); use
// --break to preload one before entering raw mode.
type rawKeyReader struct{}

func (r *rawKeyReader) Read(p []byte) (int, error) {
	buf := make([]byte, 1)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if len(p) < 2 {
		p[0] = buf[0]
		return 1, nil
	}
	p[0] = buf[0]
	p[1] = '\n'
	return 2, nil
}
