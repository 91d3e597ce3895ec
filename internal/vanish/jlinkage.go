package vanish

import "github.com/perceptionworks/vanish/internal/geom"

// cluster is the J-linkage working state for one group of segments. Members
// index the usable segment slice and stay sorted ascending; prefs is the
// intersection of the members' preference sets. Clusters partition the
// segment set at every point during clustering: each segment belongs to
// exactly one.
type cluster struct {
	members []int
	prefs   bitset
}

// buildPreferences builds the binary preference matrix, one fixed-width
// bitset row per usable segment with one bit per voting hypothesis. The row
// is replaced wholesale whenever the hypothesis set changes; it is never
// edited in place.
func buildPreferences(segs []geom.Segment, usable []int, hyps []Hypothesis, threshold float64) []bitset {
	prefs := make([]bitset, len(usable))
	for u, si := range usable {
		row := newBitset(len(hyps))
		for k, h := range hyps {
			if isInlier(segs[si], h.Point, threshold) {
				row.set(k)
			}
		}
		prefs[u] = row
	}
	return prefs
}

// jaccardDistance is 1 - |a∩b| / |a∪b| over preference sets, with the
// convention that two empty sets are maximally dissimilar (distance 1):
// outliers must not unite on the strength of shared emptiness.
func jaccardDistance(a, b bitset) float64 {
	union := unionCount(a, b)
	if union == 0 {
		return 1
	}
	return 1 - float64(intersectionCount(a, b))/float64(union)
}

// jlinkage agglomeratively merges per-segment singleton clusters until the
// minimum pairwise Jaccard distance reaches 1 (no informative merge remains)
// or a single cluster is left. A merge replaces the pair with one cluster
// whose preference set is the intersection of the two and whose member list
// is the union.
//
// Tie-break rule: among pairs at the minimum distance, the pair with the
// larger combined member count merges first; remaining ties fall to the
// lowest leading member index. First-found tie-breaking would make the
// partition depend on input ordering; this rule keeps it stable.
func jlinkage(prefs []bitset) []cluster {
	clusters := make([]cluster, len(prefs))
	for i, p := range prefs {
		clusters[i] = cluster{members: []int{i}, prefs: p}
	}

	for len(clusters) > 1 {
		bi, bj := -1, -1
		bestDist := 1.0
		bestSize := 0
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := jaccardDistance(clusters[i].prefs, clusters[j].prefs)
				if d >= 1 {
					continue
				}
				size := len(clusters[i].members) + len(clusters[j].members)
				better := false
				switch {
				case bi == -1 || d < bestDist:
					better = true
				case d == bestDist && size > bestSize:
					better = true
				case d == bestDist && size == bestSize:
					better = clusters[i].members[0] < clusters[bi].members[0]
				}
				if better {
					bi, bj, bestDist, bestSize = i, j, d, size
				}
			}
		}
		if bi == -1 {
			break
		}

		merged := cluster{
			members: mergeSorted(clusters[bi].members, clusters[bj].members),
			prefs:   intersection(clusters[bi].prefs, clusters[bj].prefs),
		}
		clusters[bi] = merged
		clusters = append(clusters[:bj], clusters[bj+1:]...)
	}
	return clusters
}

// mergeSorted merges two ascending index slices into a new ascending slice.
// Member sets are disjoint by the partition invariant.
func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
