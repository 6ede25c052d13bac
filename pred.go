package stockroom

// predicateIndex pairs a registered predicate with its cached candidate list.
// The list holds every entity id believed to satisfy the predicate; entries
// for removed entities become NullEntityID tombstones lazily, when a cursor
// visits them, and are compacted out on the next Add.
type predicateIndex[ID comparable, S Storage[ID]] struct {
	pred Predicate[ID, S]
	ids  []EntityID
}

// sweep compacts the candidate list in place, dropping tombstones. Folding
// compaction into Add bounds long-term list growth without a dedicated
// invalidation pass.
func (p *predicateIndex[ID, S]) sweep() {
	live := p.ids[:0]
	for _, id := range p.ids {
		if !id.IsNull() {
			live = append(live, id)
		}
	}
	p.ids = live
}

// liveCount counts entries that still resolve against the given table,
// without tombstoning.
func (p *predicateIndex[ID, S]) liveCount(entities map[EntityID]*Entity[ID, S]) int {
	n := 0
	for _, id := range p.ids {
		if id.IsNull() {
			continue
		}
		if _, ok := entities[id]; ok {
			n++
		}
	}
	return n
}
