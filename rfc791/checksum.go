// Package rfc791 implements the streaming Internet checksum of RFC 791:
// the 16-bit ones' complement of the ones' complement sum of all 16-bit
// words in the data, with odd trailing bytes padded with zero.
package rfc791

import "encoding/binary"

func New() *Checksum {
	return &Checksum{}
}

// Checksum accumulates data across Write calls. Odd-length writes are
// handled by carrying the excess byte into the next write.
type Checksum struct {
	sum      uint32
	excedent uint8
	needsPad bool
}

func (c *Checksum) Write(buff []byte) (n int, err error) {
	if c.needsPad && len(buff) > 0 {
		c.sum += uint32(c.excedent)<<8 + uint32(buff[0])
		buff = buff[1:]
		c.needsPad = false
	}
	if len(buff)%2 != 0 {
		c.excedent = buff[len(buff)-1]
		buff = buff[:len(buff)-1]
		c.needsPad = true
	}
	for i := 0; i < len(buff)/2; i++ {
		c.sum += uint32(binary.BigEndian.Uint16(buff[i*2 : i*2+2]))
	}
	return len(buff), nil
}

func (c *Checksum) Sum() uint16 {
	if c.needsPad {
		c.sum += uint32(c.excedent) << 8
		c.needsPad = false
	}
	for c.sum > 0xffff {
		c.sum = c.sum&0xffff + c.sum>>16
	}
	return ^uint16(c.sum)
}

func (c *Checksum) Reset() {
	c.sum = 0
	c.excedent = 0
	c.needsPad = false
}
