package stream

import (
	"github.com/pthm-cable/abyss/game"
)

// NewFrame captures the renderer-facing state of g.
func NewFrame(g *game.Game) Frame {
	esc := g.Escalation()
	views := g.Creatures()

	f := Frame{
		Tick:          g.TickCount(),
		Phase:         g.Phase().String(),
		Climax:        esc.Climax,
		BloomStrength: esc.BloomStrength,
		BloomRadius:   esc.BloomRadius,
		Creatures:     make([]CreatureFrame, len(views)),
	}
	for i, v := range views {
		points := make([]float32, 0, 2*len(v.Segments))
		for _, s := range v.Segments {
			points = append(points, float32(s.X), float32(s.Y))
		}
		f.Creatures[i] = CreatureFrame{
			ID:     v.ID,
			Color:  uint32(v.Color),
			Energy: float32(v.Energy),
			Points: points,
		}
	}
	return f
}

// ApplyCommands drains every queued command into g without blocking and
// returns how many were applied. Must run on the goroutine that ticks g.
func ApplyCommands(g *game.Game, cmds <-chan Command) int {
	n := 0
	for {
		select {
		case cmd := <-cmds:
			switch cmd.T {
			case CmdInteract:
				g.TriggerFirstInteraction()
			case CmdSpawn:
				g.Spawn(cmd.X, cmd.Y, cmd.Tag)
			}
			n++
		default:
			return n
		}
	}
}
