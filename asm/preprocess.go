package asm

import (
	"fmt"
	"regexp"
	"strings"
)

var commentPattern = regexp.MustCompile(`;.*$`)

// ParsedSource is the result of stripping comments and blank lines from a
// source listing and resolving label declarations against the
// instructions that follow them.
type ParsedSource struct {
	Instructions []*Instruction
	// Labels maps a label name to the index, within Instructions, of the
	// instruction it precedes. A label at end of file maps to
	// len(Instructions).
	Labels map[string]int
}

// ParseSource strips ";" comments and blank lines, then parses the
// remaining lines into instructions, recording label declarations along
// the way. Labels and instruction text may not share a line.
func ParseSource(lines []string) (*ParsedSource, error) {
	ps := &ParsedSource{Labels: map[string]int{}}

	for _, raw := range lines {
		line := commentPattern.ReplaceAllString(raw, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			label := strings.TrimSpace(strings.TrimSuffix(line, ":"))
			if label == "" {
				return nil, fmt.Errorf("empty label declaration: %q", raw)
			}
			ps.Labels[label] = len(ps.Instructions)
			continue
		}

		instr, err := ParseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", raw, err)
		}
		ps.Instructions = append(ps.Instructions, instr)
	}

	return ps, nil
}

// ResolveAddresses assigns each instruction a byte address starting at
// origin (accounting for each instruction's variable width) and returns
// the label-name-to-address map codegen consults for Variable expressions.
func ResolveAddresses(ps *ParsedSource, origin uint16) map[string]uint16 {
	addrs := make([]uint16, len(ps.Instructions)+1)
	addr := origin
	for i, instr := range ps.Instructions {
		addrs[i] = addr
		addr += uint16(InstructionSize(instr))
	}
	addrs[len(ps.Instructions)] = addr

	labels := make(map[string]uint16, len(ps.Labels))
	for name, idx := range ps.Labels {
		labels[name] = addrs[idx]
	}
	return labels
}

// AssembleSource runs the full pipeline: parse, resolve labels, merge in
// any caller-supplied variables, and encode. extraVars values take
// precedence only where they don't collide with a label name.
func AssembleSource(lines []string, origin uint16, extraVars map[string]uint16) ([]byte, error) {
	ps, err := ParseSource(lines)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]uint16, len(extraVars)+len(ps.Labels))
	for k, v := range extraVars {
		vars[k] = v
	}
	for k, v := range ResolveAddresses(ps, origin) {
		vars[k] = v
	}

	return Assemble(ps.Instructions, vars)
}
