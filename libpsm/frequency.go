package libpsm

import (
	"github.com/2x3systems/psmiles/psm"
	"github.com/emirpasic/gods/maps/treemap"
)

// particleCounts implements psm.ParticleCounts.
type particleCounts struct {
	total   int
	inOrder []psm.NameCount
	byName  *treemap.Map // name -> index into inOrder
}

// countParticles tallies the names of the given instances.  #Name nodes are not particles and are skipped.
func countParticles(inst []instance) *particleCounts {
	pc := &particleCounts{
		byName: treemap.NewWithStringComparator(),
	}
	for _, in := range inst {
		if in.monomer {
			continue
		}
		pc.total++
		if idx, found := pc.byName.Get(in.name); found {
			pc.inOrder[idx.(int)].Count++
		} else {
			pc.byName.Put(in.name, len(pc.inOrder))
			pc.inOrder = append(pc.inOrder, psm.NameCount{Name: in.name, Count: 1})
		}
	}
	return pc
}

func (pc *particleCounts) TotalParticles() int {
	return pc.total
}

func (pc *particleCounts) DistinctParticles() int {
	return len(pc.inOrder)
}

func (pc *particleCounts) Frequency(name string) int {
	if idx, found := pc.byName.Get(name); found {
		return pc.inOrder[idx.(int)].Count
	}
	return 0
}

func (pc *particleCounts) HasParticle(name string) bool {
	_, found := pc.byName.Get(name)
	return found
}

func (pc *particleCounts) InOrder() []psm.NameCount {
	return append([]psm.NameCount(nil), pc.inOrder...)
}

func (pc *particleCounts) Sorted() []psm.NameCount {
	sorted := make([]psm.NameCount, 0, len(pc.inOrder))
	for _, idx := range pc.byName.Values() {
		sorted = append(sorted, pc.inOrder[idx.(int)])
	}
	return sorted
}

func (pc *particleCounts) AsMap() map[string]int {
	m := make(map[string]int, len(pc.inOrder))
	for _, nc := range pc.inOrder {
		m[nc.Name] = nc.Count
	}
	return m
}
