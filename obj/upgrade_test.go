package obj

import (
	"testing"
	"time"

	"github.com/milk9111/overworld/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectGate = 300 * time.Millisecond

func TestUpgradeMenuSelectionBounds(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	m := NewUpgradeMenu(p, selectGate)
	require.Equal(t, 2, m.Selection)

	m.Update(Input{Right: true}, 0)
	assert.Equal(t, 3, m.Selection)
	assert.False(t, m.CanSelect())

	// gated until the selection cooldown passes
	m.Update(Input{Right: true}, 100*time.Millisecond)
	assert.Equal(t, 3, m.Selection)

	now := time.Duration(0)
	for i := 0; i < 5; i++ {
		now += selectGate
		m.Update(Input{}, now)
		m.Update(Input{Right: true}, now)
	}
	assert.Equal(t, StatCount-1, m.Selection)
	assert.True(t, m.CanSelect(), "moving past the end does not close the gate")

	for i := 0; i < 10; i++ {
		now += selectGate
		m.Update(Input{}, now)
		m.Update(Input{Left: true}, now)
	}
	assert.Equal(t, 0, m.Selection)
}

func TestUpgradeMenuConfirm(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	m := NewUpgradeMenu(p, selectGate)

	m.Update(Input{Confirm: true}, 0)
	assert.Equal(t, 12.0, p.Stats[StatAttack])
	assert.Equal(t, 400.0, p.Exp)

	// held confirm does not upgrade again inside the window
	m.Update(Input{Confirm: true}, 100*time.Millisecond)
	assert.Equal(t, 400.0, p.Exp)

	items := m.Items()
	require.Len(t, items, StatCount)
	assert.Equal(t, StatAttack, items[2].Stat)
	assert.True(t, items[2].Selected)
	assert.False(t, items[1].Selected)
	assert.Equal(t, 12.0, items[2].Value)
	assert.Equal(t, 20.0, items[2].Max)
	assert.InDelta(t, 140.0, items[2].Cost, 1e-9)
}

func TestUpgradeMenuMoveAndConfirmSameTick(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	m := NewUpgradeMenu(p, selectGate)

	m.Update(Input{Right: true, Confirm: true}, 0)

	assert.Equal(t, 3, m.Selection)
	assert.InDelta(t, 4.8, p.Stats[StatMagic], 1e-9)
	assert.Equal(t, 10.0, p.Stats[StatAttack])
}

func TestUpgradeMenuConfirmWithoutExp(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	p.Exp = 0
	m := NewUpgradeMenu(p, selectGate)

	m.Update(Input{Confirm: true}, 0)
	assert.Equal(t, 10.0, p.Stats[StatAttack])
	assert.False(t, m.CanSelect())
}
