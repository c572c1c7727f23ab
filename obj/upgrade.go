package obj

import (
	"time"

	"github.com/milk9111/overworld/component"
)

// UpgradeItem is the render state of one column of the upgrade menu.
type UpgradeItem struct {
	Stat     Stat
	Value    float64
	Max      float64
	Cost     float64
	Selected bool
}

// UpgradeMenu lets the player spend exp on stats while the level is paused.
type UpgradeMenu struct {
	Selection int

	player *Player
	gate   component.Gate
}

// NewUpgradeMenu starts with the middle stat selected.
func NewUpgradeMenu(p *Player, cooldown time.Duration) *UpgradeMenu {
	return &UpgradeMenu{
		Selection: StatCount / 2,
		player:    p,
		gate:      component.NewGate(cooldown),
	}
}

// Update applies one tick of menu input. Every accepted action closes the
// selection gate.
func (m *UpgradeMenu) Update(in Input, now time.Duration) {
	if m.gate.Ready() {
		switch {
		case in.Right && m.Selection < StatCount-1:
			m.Selection++
			m.gate.Close(now)
		case in.Left && m.Selection > 0:
			m.Selection--
			m.gate.Close(now)
		}
		if in.Confirm {
			m.gate.Close(now)
			m.player.Upgrade(Stat(m.Selection))
		}
	}
	m.gate.Update(now)
}

// CanSelect reports whether the menu accepts input.
func (m *UpgradeMenu) CanSelect() bool {
	return m.gate.Ready()
}

func (m *UpgradeMenu) Items() []UpgradeItem {
	items := make([]UpgradeItem, StatCount)
	for i := range items {
		s := Stat(i)
		items[i] = UpgradeItem{
			Stat:     s,
			Value:    m.player.Stats[s],
			Max:      m.player.MaxStats[s],
			Cost:     m.player.UpgradeCost[s],
			Selected: i == m.Selection,
		}
	}
	return items
}
