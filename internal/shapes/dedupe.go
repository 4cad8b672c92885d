package shapes

// Deduplicate resolves ambiguous quadrilateral classifications.
//
// Rectangles and Diamonds are returned unchanged (as copies). Inputs is
// refined in two phases:
//
//   - Phase A: every key also present in Rectangles or Diamonds is removed.
//     Priority is Rectangle > Diamond > Input.
//   - Phase B: for every ordered pair (i, j) with i before j in Inputs, if
//     the x-coordinates of their keys are near, j is marked redundant. Only x
//     is compared. All marked keys are then removed, so the earliest key of
//     each near-duplicate cluster survives.
//
// Both phases are idempotent, and so is Deduplicate as a whole:
// Deduplicate(Deduplicate(b)) equals Deduplicate(b). After Phase B no two
// remaining Inputs are near, otherwise the later one would have been marked.
//
// Phase B is O(n²) over Inputs; per-image shape counts are in the tens.
// The input buckets are not modified.
func Deduplicate(b Buckets, t Tolerance) Buckets {
	out := b.Clone()
	removeClaimedInputs(out)
	mergeNearInputs(out.Inputs, t)
	return out
}

// removeClaimedInputs is Phase A.
func removeClaimedInputs(b Buckets) {
	for _, k := range b.Inputs.Keys() {
		if b.Rectangles.Contains(k) || b.Diamonds.Contains(k) {
			b.Inputs.Remove(k)
		}
	}
}

// mergeNearInputs is Phase B. A key marked redundant still marks later keys,
// so a chain of near neighbours collapses onto its first member.
func mergeNearInputs(inputs *KeySet, t Tolerance) {
	keys := inputs.Keys()
	redundant := make(map[ShapeKey]bool)
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if t.Near(keys[i].X, keys[j].X) {
				redundant[keys[j]] = true
			}
		}
	}
	for k := range redundant {
		inputs.Remove(k)
	}
}
