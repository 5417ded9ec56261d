package expiry

// Confidence tuning. Both values are heuristic: the bonus rewards a date that
// co-occurs with an expiry phrase, the multi-line base stands in for an OCR
// confidence when no single line produced the candidate.
const (
	keywordBonus            = 0.25
	multiLineBaseConfidence = 0.55
)

// scoreFor computes a candidate's confidence, clamped into [0,1].
func scoreFor(base float64, hasKeyword bool) float64 {
	if base < 0 {
		base = 0
	}
	score := base
	if hasKeyword {
		score += keywordBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

// selectBest picks the winning candidate: any candidate whose source matched
// an expiry keyword beats every candidate without one; within a class the
// highest score wins, and exact ties keep the earliest-produced candidate.
func selectBest(candidates []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range candidates {
		if !found {
			best, found = c, true
			continue
		}
		if c.HasKeyword != best.HasKeyword {
			if c.HasKeyword {
				best = c
			}
			continue
		}
		if c.Score > best.Score {
			best = c
		}
	}
	return best, found
}
