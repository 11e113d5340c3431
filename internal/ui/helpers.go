package ui

import (
	"fmt"

	"popquiz-client/internal/domain"
)

// OptionLabel prefixes an option with its letter, "A. Paris".
func OptionLabel(index int, text string) string {
	return fmt.Sprintf("%c. %s", 'A'+index, text)
}

// Medal returns the glyph for a 1-based leaderboard position; the
// first three positions get medals, by list order only.
func Medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// placementColor styles the top three rows; everyone else gets the
// default color.
func placementColor(position int) string {
	switch position {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "orange"
	default:
		return "white"
	}
}

// PlacementOf finds nickname's 1-based rank in the server-ordered
// leaderboard, 0 when absent. The order is never recomputed locally.
func PlacementOf(results domain.Results, nickname string) int {
	for i, entry := range results.Leaderboard {
		if entry.Nickname == nickname {
			return i + 1
		}
	}
	return 0
}
