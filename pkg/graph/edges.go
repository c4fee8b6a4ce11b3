package graph

import "textgraph/pkg/store"

// BuildCoOccurrenceEdges derives the complete pairwise edge set for one
// text item's entities: every unordered pair, canonicalized so the source
// is the entity with the lexicographically smaller public ID, with
// duplicate pairs collapsed. Fewer than two entities yield no candidates.
//
// The result has exactly n*(n-1)/2 pairs for n distinct entities, so edge
// generation is quadratic in the per-item entity count.
func BuildCoOccurrenceEdges(entities []store.EntityRef) []store.EdgePair {
	if len(entities) < 2 {
		return nil
	}

	type pairKey struct{ source, target int64 }
	seen := make(map[pairKey]struct{}, len(entities)*(len(entities)-1)/2)
	pairs := make([]store.EdgePair, 0, len(entities)*(len(entities)-1)/2)

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			source, target := entities[i], entities[j]
			if source.ID == target.ID {
				continue
			}
			if source.PublicID > target.PublicID {
				source, target = target, source
			}
			key := pairKey{source.ID, target.ID}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, store.EdgePair{SourceID: source.ID, TargetID: target.ID})
		}
	}

	return pairs
}
