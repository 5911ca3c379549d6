package game

import (
	"fmt"
	"strings"
)

// TurnEvent records one executed action. Slot is the actor's position in the
// battle, 0 for the first combatant and 1 for the second; IDs may repeat for
// unsaved combatants, slots do not.
type TurnEvent struct {
	Turn        int         `json:"turn"`
	Slot        int         `json:"slot"`
	ActorID     uint        `json:"actor_id"`
	Actor       string      `json:"actor"`
	Target      string      `json:"target"`
	Move        string      `json:"move"`
	DamageClass DamageClass `json:"damage_class"`
	Hit         bool        `json:"hit"`
	Roll        int         `json:"roll,omitempty"`
	Damage      int         `json:"damage"`
	Recoil      int         `json:"recoil,omitempty"`
	Drain       int         `json:"drain,omitempty"`
	ActorHP     int         `json:"actor_hp"`
	TargetHP    int         `json:"target_hp"`
}

// String renders the event as a transcript line.
func (e TurnEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s uses %s(%s)", e.Actor, e.Move, e.DamageClass)
	if !e.Hit {
		b.WriteString(" but it missed")
	} else {
		fmt.Fprintf(&b, " with %d damage", e.Damage)
	}
	if e.Recoil > 0 {
		fmt.Fprintf(&b, ", %d recoil", e.Recoil)
	}
	if e.Drain > 0 {
		fmt.Fprintf(&b, ", drains %d", e.Drain)
	}
	fmt.Fprintf(&b, " [%s:%d %s:%d]", e.Actor, e.ActorHP, e.Target, e.TargetHP)
	return b.String()
}

// BattleOutcome is the immutable result of one battle. WinnerSlot is the
// TurnEvent.Slot of the winner.
type BattleOutcome struct {
	Winner     *Combatant  `json:"-"`
	Loser      *Combatant  `json:"-"`
	WinnerSlot int         `json:"winner_slot"`
	Turns      int         `json:"turns"`
	Header     []string    `json:"header"`
	Events     []TurnEvent `json:"events"`
	Final      []string    `json:"final"`
}

// Report renders the full transcript.
func (o *BattleOutcome) Report() string {
	lines := make([]string, 0, len(o.Header)+len(o.Events)+len(o.Final))
	lines = append(lines, o.Header...)
	for _, e := range o.Events {
		lines = append(lines, e.String())
	}
	lines = append(lines, o.Final...)
	return strings.Join(lines, "\n")
}

// MoveCounts tallies move uses per battle slot.
func (o *BattleOutcome) MoveCounts() [2]map[string]int {
	out := [2]map[string]int{make(map[string]int, 4), make(map[string]int, 4)}
	for _, e := range o.Events {
		if e.Slot == 0 || e.Slot == 1 {
			out[e.Slot][e.Move]++
		}
	}
	return out
}
