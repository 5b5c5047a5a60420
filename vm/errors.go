package vm

import "errors"

var (
	errOutOfRange         = errors.New("address out of range")
	errNoRegion           = errors.New("no mapped region for address")
	errUnknownRegister    = errors.New("unknown register")
	errUnknownInstruction = errors.New("instruction not recognized")
)
