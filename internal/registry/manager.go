package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ouisvc/internal/logs"
	"ouisvc/internal/oui"
)

// Manager owns the registry lifecycle: where the data comes from (local
// file, DB snapshot, IEEE fetch), building the index aside and swapping it
// into the Service. The repo is optional — without a DB the manager just
// fetches or reads the file.
type Manager struct {
	svc  *oui.Service
	repo *Repo // nil — no persistence
	urls []string
	opts oui.LoadOptions
	keep int
}

func NewManager(svc *oui.Service, repo *Repo, urls []string, opts oui.LoadOptions, keepSnapshots int) *Manager {
	if len(urls) == 0 {
		urls = oui.DefaultFetchURLs()
	}
	return &Manager{svc: svc, repo: repo, urls: urls, opts: opts, keep: keepSnapshots}
}

// Bootstrap loads the initial index. Precedence: configured local file,
// then latest DB snapshot, then a fetch (when enabled). A configured file
// that fails to load is a hard error; fetch failures leave the service
// not-ready and are retried by the periodic refresh.
func (m *Manager) Bootstrap(ctx context.Context, file string, fetchOnStart bool) error {
	if file != "" {
		ix, stats, err := oui.LoadFile(file, m.opts)
		if err != nil {
			return err
		}
		m.svc.Swap(ix)
		logs.Logger.Infof("registry loaded from %s: %d records (%d skipped, %d malformed)",
			file, stats.Records, stats.Skipped, stats.Malformed)
		return nil
	}

	if m.repo != nil {
		if snap, err := m.repo.Latest(); err == nil {
			ix, stats, lerr := oui.LoadBytes(snap.Payload, m.opts)
			if lerr != nil {
				return fmt.Errorf("snapshot %s: %w", snap.UID, lerr)
			}
			m.svc.Swap(ix)
			logs.Logger.Infof("registry loaded from snapshot %s (%s): %d records",
				snap.UID, snap.CreatedAt.Format(time.RFC3339), stats.Records)
			return nil
		}
	}

	if !fetchOnStart {
		return errors.New("no registry source: no file, no snapshot, fetch disabled")
	}
	_, err := m.Refresh(ctx)
	return err
}

// Refresh fetches the registry, builds a fresh index and swaps it in,
// persisting a snapshot when a repo is configured. The current index stays
// live until the new one has fully built.
func (m *Manager) Refresh(ctx context.Context) (*oui.LoadStats, error) {
	payload, err := oui.FetchAll(ctx, m.urls)
	if err != nil {
		return nil, err
	}
	ix, stats, err := oui.LoadBytes(payload, m.opts)
	if err != nil {
		return nil, err
	}
	m.svc.Swap(ix)

	if m.repo != nil {
		if _, err := m.repo.SaveSnapshot(strings.Join(m.urls, " "), payload, stats.Records); err != nil {
			logs.Logger.Warnf("snapshot save: %v", err)
		} else if err := m.repo.Prune(m.keep); err != nil {
			logs.Logger.Warnf("snapshot prune: %v", err)
		}
	}

	logs.Logger.Infof("registry refreshed: %d records (%d skipped, %d malformed)",
		stats.Records, stats.Skipped, stats.Malformed)
	return stats, nil
}

// RunPeriodic refreshes every interval until ctx is done.
func (m *Manager) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := m.Refresh(ctx); err != nil {
				logs.Logger.Errorf("periodic refresh: %v", err)
			}
		}
	}
}
