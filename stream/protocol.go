// Package stream bridges a running simulation to external renderers over
// WebSocket. Frames go out as msgpack binary messages; pointer input comes
// back as msgpack commands.
package stream

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Client -> server command types
const (
	CmdSpawn    = "spawn"    // pointer drag at a world position
	CmdInteract = "interact" // first pointer down
)

// Command is a decoded client message.
type Command struct {
	T   string  `msgpack:"t"`
	X   float64 `msgpack:"x,omitempty"`
	Y   float64 `msgpack:"y,omitempty"`
	Tag string  `msgpack:"tag,omitempty"`
}

// CreatureFrame is one creature as sent to renderers.
type CreatureFrame struct {
	ID     uint32    `msgpack:"id"`
	Color  uint32    `msgpack:"c"`
	Energy float32   `msgpack:"e"`
	Points []float32 `msgpack:"p"` // x0, y0, x1, y1, ... head first
}

// Frame is the full state broadcast.
type Frame struct {
	Tick          int32           `msgpack:"tick"`
	Phase         string          `msgpack:"phase"`
	Climax        bool            `msgpack:"climax"`
	BloomStrength float64         `msgpack:"bs"`
	BloomRadius   float64         `msgpack:"br"`
	Creatures     []CreatureFrame `msgpack:"cr"`
}

// EncodeFrame marshals a frame for a binary WebSocket message.
func EncodeFrame(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	return data, nil
}

// DecodeCommand unmarshals and validates a client message.
func DecodeCommand(raw []byte) (Command, error) {
	var cmd Command
	if err := msgpack.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("decoding command: %w", err)
	}
	switch cmd.T {
	case CmdSpawn, CmdInteract:
		return cmd, nil
	}
	return Command{}, fmt.Errorf("unknown command type %q", cmd.T)
}
