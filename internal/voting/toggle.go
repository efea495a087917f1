// Package voting applique les votes sur les questions et les réponses.
//
// Les questions gardent deux ensembles exclusifs (upvotedBy, downvotedBy) et un
// compteur net dérivé; les réponses n'ont qu'un ensemble votedBy.
package voting

import (
	"fmt"
	"slices"

	"github.com/MassBabyGeek/StudyHub-backend/internal/apperrors"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection valide la direction reçue dans une requête
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown vote direction %q", apperrors.ErrInvalidInput, s)
	}
}

// ApplyVoteToggle calcule les nouveaux ensembles après un vote de userID.
// Voter dans la même direction retire le vote; voter dans l'autre direction
// retire d'abord le vote opposé. Les slices d'entrée ne sont pas modifiées.
func ApplyVoteToggle(up, down []string, userID string, dir Direction) (newUp, newDown []string, net int) {
	newUp, newDown = uniq(up), uniq(down)

	same, other := &newUp, &newDown
	if dir == Down {
		same, other = &newDown, &newUp
	}

	if slices.Contains(*same, userID) {
		*same = without(*same, userID)
	} else {
		*same = append(*same, userID)
		*other = without(*other, userID)
	}

	return newUp, newDown, len(newUp) - len(newDown)
}

// ToggleVoter inverse la présence de userID dans votedBy (votes des réponses).
// added indique si le vote vient d'être ajouté.
func ToggleVoter(votedBy []string, votes int, userID string) (newVotedBy []string, newVotes int, added bool) {
	if slices.Contains(votedBy, userID) {
		return without(votedBy, userID), votes - 1, false
	}
	return append(uniq(votedBy), userID), votes + 1, true
}

// uniq copie ids sans doublons, en gardant l'ordre
func uniq(ids []string) []string {
	out := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func without(ids []string, userID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
