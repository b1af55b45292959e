package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/marquee/internal/domain"
)

// SelectItem builds the detail record for entry. The current detail is
// cleared before any request is made; cast, seasons and episodes are then
// fetched concurrently and joined. Unlike the listing actions a failure is
// returned to the caller and the detail stays empty.
func (s *Store) SelectItem(ctx context.Context, entry domain.Entry) (domain.Detail, error) {
	s.ResetDetail()

	id := entry.ID()

	var (
		cast     []domain.CastMember
		seasons  []domain.Season
		episodes []domain.Episode
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cast, err = s.client.GetCast(gctx, id); err != nil {
			return &domain.TransportError{Op: "getCast", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if seasons, err = s.client.GetSeasons(gctx, id); err != nil {
			return &domain.TransportError{Op: "getSeasons", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if episodes, err = s.client.GetEpisodes(gctx, id); err != nil {
			return &domain.TransportError{Op: "getEpisodes", Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load show detail", "id", id, "error", err)
		return domain.Detail{}, err
	}

	detail := domain.Detail{
		Info:         entry,
		CastSummary:  domain.CastSummary(cast),
		SeasonCount:  len(seasons),
		EpisodeCount: len(episodes),
	}

	s.mu.Lock()
	s.detail = detail
	s.mu.Unlock()

	s.logger.Debug("loaded show detail", "id", id, "seasons", detail.SeasonCount, "episodes", detail.EpisodeCount)
	return detail, nil
}

// ResetDetail clears the current detail record
func (s *Store) ResetDetail() {
	s.mu.Lock()
	s.detail = domain.Detail{}
	s.mu.Unlock()
}
