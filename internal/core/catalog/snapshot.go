package catalog

import "github.com/shantanugsharp/chatbot-be/internal/core/domain"

// Snapshot is an immutable catalog. A reload builds a new Snapshot instead of
// touching an existing one, so readers never need a lock.
type Snapshot struct {
	tracks []domain.Track
	stats  domain.CatalogStats
}

// NewSnapshot copies tracks into a new snapshot.
func NewSnapshot(tracks []domain.Track) *Snapshot {
	owned := make([]domain.Track, len(tracks))
	copy(owned, tracks)
	return &Snapshot{
		tracks: owned,
		stats:  domain.ComputeStats(owned),
	}
}

// Tracks returns the snapshot's tracks. Callers must not modify the slice.
func (s *Snapshot) Tracks() []domain.Track {
	if s == nil {
		return nil
	}
	return s.tracks
}

// Head returns up to n tracks in catalog order.
func (s *Snapshot) Head(n int) []domain.Track {
	tracks := s.Tracks()
	if n < len(tracks) {
		return tracks[:n]
	}
	return tracks
}

func (s *Snapshot) Len() int { return len(s.Tracks()) }

func (s *Snapshot) Stats() domain.CatalogStats {
	if s == nil {
		return domain.CatalogStats{}
	}
	return s.stats
}
