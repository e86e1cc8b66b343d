package surpass

// ExcludedVolume is the SURPASS pairwise kernel (spec.md §4.3): a flat
// penalty inside a repulsive radius expressed directly in fixed-point
// units, so the squared-distance comparison never leaves integer
// arithmetic. RRepUnits is the repulsive radius already multiplied by
// the system's scale.
type ExcludedVolume struct {
	RRepUnits int64
	Penalty   float64
}

// pairEnergy evaluates the kernel for one pair given their per-axis i32
// displacement, exiting as soon as any partial sum of squares already
// meets or exceeds the threshold (spec.md §4.10: "exits early on
// axis-wise overflow of a squared-distance threshold expressed in
// integer units").
func (k ExcludedVolume) pairEnergy(dx, dy, dz int32) float64 {
	thresholdSq := k.RRepUnits * k.RRepUnits

	sum := int64(dx) * int64(dx)
	if sum >= thresholdSq {
		return 0
	}
	sum += int64(dy) * int64(dy)
	if sum >= thresholdSq {
		return 0
	}
	sum += int64(dz) * int64(dz)
	if sum >= thresholdSq {
		return 0
	}
	return k.Penalty
}

// DeltaEnergy evaluates the change in total excluded-volume energy
// caused by committing proposal, without touching a materialized
// neighbor list (spec.md §4.10): every moved residue is compared
// against every non-moved residue for both its before and after
// position, and moved-moved pairs are compared directly between the
// proposal's own before/after slices.
func (k ExcludedVolume) DeltaEnergy(s *SurpassAlphaSystem, p Proposal) float64 {
	first := p.FirstMovedIndex
	last := first + p.Size() // exclusive
	var delta float64

	for idx := 0; idx < s.Size(); idx++ {
		if idx >= first && idx < last {
			continue
		}
		other := s.positions[idx]
		for m := 0; m < p.Size(); m++ {
			before := s.positions[first+m]
			after := p.After[m]

			eBefore := k.pairEnergy(before.X-other.X, before.Y-other.Y, before.Z-other.Z)
			eAfter := k.pairEnergy(after.X-other.X, after.Y-other.Y, after.Z-other.Z)
			delta += eAfter - eBefore
		}
	}

	for m := 0; m < p.Size(); m++ {
		for n := m + 1; n < p.Size(); n++ {
			beforeM, beforeN := s.positions[first+m], s.positions[first+n]
			afterM, afterN := p.After[m], p.After[n]

			eBefore := k.pairEnergy(beforeM.X-beforeN.X, beforeM.Y-beforeN.Y, beforeM.Z-beforeN.Z)
			eAfter := k.pairEnergy(afterM.X-afterN.X, afterM.Y-afterN.Y, afterM.Z-afterN.Z)
			delta += eAfter - eBefore
		}
	}

	return delta
}

// Full evaluates the total excluded-volume energy over all pairs.
func (k ExcludedVolume) Full(s *SurpassAlphaSystem) float64 {
	var total float64
	for i := 0; i < s.Size(); i++ {
		for j := i + 1; j < s.Size(); j++ {
			pi, pj := s.positions[i], s.positions[j]
			total += k.pairEnergy(pi.X-pj.X, pi.Y-pj.Y, pi.Z-pj.Z)
		}
	}
	return total
}
