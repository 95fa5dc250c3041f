package scoring

import "sort"

// ProvisionalBonus derives 3/2/1 bonus points from the BPS scores of one
// fixture before the official award lands. Ties share the award and ranks
// compress: scores 30,30,25 give 3,3,2. Fewer than three distinct scores
// award fewer tiers. Callers must gate on BonusEligible; a fixture before the
// hour mark has no defined provisional bonus.
func ProvisionalBonus(bpsByElement map[int]int) map[int]int {
	if len(bpsByElement) == 0 {
		return map[int]int{}
	}

	distinct := make([]int, 0, len(bpsByElement))
	seen := make(map[int]struct{}, len(bpsByElement))
	for _, bps := range bpsByElement {
		if _, ok := seen[bps]; ok {
			continue
		}
		seen[bps] = struct{}{}
		distinct = append(distinct, bps)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	awardByScore := make(map[int]int, 3)
	tiers := []int{3, 2, 1}
	for i, score := range distinct {
		if i >= len(tiers) {
			break
		}
		awardByScore[score] = tiers[i]
	}

	out := make(map[int]int)
	for element, bps := range bpsByElement {
		if award, ok := awardByScore[bps]; ok {
			out[element] = award
		}
	}
	return out
}
