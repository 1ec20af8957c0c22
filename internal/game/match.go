package game

import "strings"

// BankEntry is one ranked answer in a fast money answer bank.
type BankEntry struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// MatchResult is the outcome of looking up a contestant's answer in a bank.
// Entry is nil when nothing matched.
type MatchResult struct {
	Points int
	Entry  *BankEntry
}

// Match looks raw up in bank, comparing lowercased and trimmed text.
// There is deliberately no fuzzy matching: the host judges near-misses with
// manual points or a later adjustment.
func Match(raw string, bank []BankEntry) MatchResult {
	normalized := normalize(raw)
	for i := range bank {
		if normalize(bank[i].Text) == normalized {
			entry := bank[i]
			return MatchResult{Points: entry.Points, Entry: &entry}
		}
	}
	return MatchResult{Points: 0, Entry: nil}
}

// BestAnswerIndex returns the index of the bank entry with the most points,
// ties broken by bank order. Returns -1 for an empty bank.
func BestAnswerIndex(bank []BankEntry) int {
	best := -1
	for i := range bank {
		if best == -1 || bank[i].Points > bank[best].Points {
			best = i
		}
	}
	return best
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
