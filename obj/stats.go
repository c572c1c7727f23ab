package obj

import "github.com/milk9111/overworld/prefabs"

// Stat indexes the upgradable player stats. The order is the upgrade menu
// order.
type Stat int

const (
	StatHealth Stat = iota
	StatEnergy
	StatAttack
	StatMagic
	StatSpeed
	statCount
)

// StatCount is the number of upgradable stats.
const StatCount = int(statCount)

var statNames = [...]string{"health", "energy", "attack", "magic", "speed"}

func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return "unknown"
	}
	return statNames[s]
}

// Stats holds one value per Stat.
type Stats [statCount]float64

func statsFromSpec(s prefabs.StatsSpec) Stats {
	return Stats{s.Health, s.Energy, s.Attack, s.Magic, s.Speed}
}

func (s Stats) Get(stat Stat) float64 {
	if stat < 0 || stat >= statCount {
		return 0
	}
	return s[stat]
}
