package game

import "goldenjack/internal/deck"

// Role-specific score floors. A total below the floor is "not good enough"
// even when it fits under 21, so the enumeration prefers totals at or above
// it. The dealer also stands at its floor during auto-play.
const (
	DealerFloor = 15
	PlayerFloor = 16
)

// ComputeScore derives the score of a hand. House rule: every ace may count
// 1, 10, or 11 independently (a "soft ten" in addition to the conventional
// values), so with k aces there are 3^k candidate totals. Selection order:
//
//  1. the maximum candidate within [floor, 21], where floor is 15 for the
//     dealer and 16 for a player;
//  2. otherwise the maximum candidate <= 21;
//  3. otherwise (busted under every assignment) the minimum candidate.
//
// The walk below is an iterative split of the ace count into 1s, 10s and 11s
// rather than a per-ace recursion; the candidate set is identical.
func ComputeScore(cards []deck.Card, isDealer bool) int {
	base := 0
	numAces := 0
	for _, c := range cards {
		if c.Rank == deck.Ace {
			numAces++
		} else {
			base += c.Rank.Value()
		}
	}

	floor := PlayerFloor
	if isDealer {
		floor = DealerFloor
	}

	var (
		bestInWindow = -1 // max total in [floor, 21]
		bestUnder    = -1 // max total <= 21
		minTotal     = -1 // min total overall
	)
	for ones := 0; ones <= numAces; ones++ {
		for tens := 0; tens <= numAces-ones; tens++ {
			elevens := numAces - ones - tens
			total := base + ones + 10*tens + 11*elevens
			if minTotal == -1 || total < minTotal {
				minTotal = total
			}
			if total <= 21 {
				if total > bestUnder {
					bestUnder = total
				}
				if total >= floor && total > bestInWindow {
					bestInWindow = total
				}
			}
		}
	}

	switch {
	case bestInWindow != -1:
		return bestInWindow
	case bestUnder != -1:
		return bestUnder
	default:
		return minTotal
	}
}
