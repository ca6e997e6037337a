package memory

import (
	"sync"

	"github.com/omarshaarawi/leaguesim/internal/league"
	"github.com/omarshaarawi/leaguesim/internal/models"
)

// Repository keeps the latest simulated league and the metadata of every
// run since startup.
type Repository struct {
	result  *league.Result
	history []models.LeagueMetadata
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveResult(result *league.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
	r.history = append(r.history, result.Metadata)
}

// GetResult returns the latest result, or nil before the first run.
func (r *Repository) GetResult() *league.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result
}

func (r *Repository) GetMetadata() *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.result == nil {
		return nil
	}
	md := r.result.Metadata
	return &md
}

// History lists the metadata of every saved run, oldest first.
func (r *Repository) History() []models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.LeagueMetadata(nil), r.history...)
}
