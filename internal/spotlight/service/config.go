package service

import "time"

// Config holds configuration for the spotlight service.
type Config struct {
	// Period is the rotation interval.
	Period time.Duration
	// CommandBuffer is the size of the inbound command queue (inventory
	// snapshots and fetch results).
	CommandBuffer int
	// EventBuffer is the size of the external events channel.
	EventBuffer int
	// DropEvents determines whether the events channel drops on overflow.
	DropEvents bool
	// TapeSize is the capacity of the diagnostics event tape.
	TapeSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Period:        5 * time.Second,
		CommandBuffer: 64,
		EventBuffer:   256,
		DropEvents:    true,
		TapeSize:      100,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Period <= 0 {
		c.Period = def.Period
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = def.CommandBuffer
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = def.EventBuffer
	}
	if c.TapeSize <= 0 {
		c.TapeSize = def.TapeSize
	}
	return c
}
