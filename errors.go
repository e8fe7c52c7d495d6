package swtch

import "errors"

var (
	ErrBadMac     = errors.New("swtch: bad MAC address")
	ErrBadIP      = errors.New("swtch: bad IPv4 address")
	ErrNoFilename = errors.New("swtch: empty request filename")
	ErrZeroBlocks = errors.New("swtch: max block count must be nonzero")
)
