package voting

import (
	"context"
	"sync"

	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
)

// View est l'état local d'une entité votable. Apply remplace l'état avant la fin
// de l'écriture distante et revient à l'état confirmé par le serveur si elle échoue.
type View[S any] struct {
	mu    sync.Mutex
	state S
}

func NewView[S any](confirmed S) *View[S] {
	return &View[S]{state: confirmed}
}

// State retourne l'état local courant
func (v *View[S]) State() S {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View[S]) set(s S) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

// Apply affiche next immédiatement puis appelle commit. Si commit échoue, l'état
// est rechargé avec reload; si le rechargement échoue aussi, l'état d'avant
// Apply est restauré. Aucun nouvel essai n'est fait.
func (v *View[S]) Apply(ctx context.Context, next S, commit func(context.Context, S) error, reload func(context.Context) (S, error)) error {
	previous := v.State()
	v.set(next)

	err := commit(ctx, next)
	if err == nil {
		return nil
	}

	confirmed, reloadErr := reload(ctx)
	if reloadErr != nil {
		logger.Warning("reload after failed vote write: %v", reloadErr)
		v.set(previous)
		return err
	}
	v.set(confirmed)
	return err
}
