// Package stats is the register-bank view of the engine's counters. The
// protocol state machines are the only writers; register and monitor
// collaborators read snapshots and may pulse Clear.
package stats

import "sync/atomic"

type Counters struct {
	requestsSent atomic.Uint32
	acksSent     atomic.Uint32
	dataSeen     atomic.Uint32
	dataSent     atomic.Uint32
	lastBlock    atomic.Uint32
}

func (c *Counters) AddRequestSent() { c.requestsSent.Add(1) }
func (c *Counters) AddAckSent()     { c.acksSent.Add(1) }

// AddDataSeen records one accepted inbound data frame and its block number.
func (c *Counters) AddDataSeen(block uint16) {
	c.dataSeen.Add(1)
	c.lastBlock.Store(uint32(block))
}

// AddDataSent records one completed outbound data frame and its block number.
func (c *Counters) AddDataSent(block uint16) {
	c.dataSent.Add(1)
	c.lastBlock.Store(uint32(block))
}

// Clear is the counter-clear pulse exposed to the register collaborator.
func (c *Counters) Clear() {
	c.requestsSent.Store(0)
	c.acksSent.Store(0)
	c.dataSeen.Store(0)
	c.dataSent.Store(0)
	c.lastBlock.Store(0)
}

// Snapshot is a read-only copy of all counters taken at one instant.
type Snapshot struct {
	RequestsSent uint32
	AcksSent     uint32
	DataSeen     uint32
	DataSent     uint32
	LastBlock    uint16
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		RequestsSent: c.requestsSent.Load(),
		AcksSent:     c.acksSent.Load(),
		DataSeen:     c.dataSeen.Load(),
		DataSent:     c.dataSent.Load(),
		LastBlock:    uint16(c.lastBlock.Load()),
	}
}
