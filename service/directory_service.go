package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"backend/client"
	"backend/model"

	"github.com/rs/zerolog/log"
)

// DirectorySnapshot is an immutable view of the company directory. Concurrent
// readers share one snapshot; a refresh swaps in a whole new one.
type DirectorySnapshot struct {
	Records  []model.CompanyRecord
	byTicker map[string]int
	LoadedAt time.Time
}

// ByTicker returns the record for an uppercase ticker, if present.
func (s *DirectorySnapshot) ByTicker(ticker string) (model.CompanyRecord, bool) {
	i, ok := s.byTicker[strings.ToUpper(ticker)]
	if !ok {
		return model.CompanyRecord{}, false
	}
	return s.Records[i], true
}

func (s *DirectorySnapshot) Empty() bool {
	return s == nil || len(s.Records) == 0
}

// DirectoryService owns the directory snapshot and its periodic refresh.
type DirectoryService struct {
	sec      *client.SECClient
	snapshot atomic.Value // *DirectorySnapshot
}

func NewDirectoryService(sec *client.SECClient) *DirectoryService {
	d := &DirectoryService{sec: sec}
	d.Replace(nil)
	return d
}

// Load fetches a fresh directory snapshot and swaps it in atomically.
func (d *DirectoryService) Load(ctx context.Context) error {
	records, err := d.sec.FetchCompanyTickers(ctx)
	if err != nil {
		return err
	}
	d.Replace(records)
	log.Info().Int("companies", len(records)).Msg("Company directory loaded")
	return nil
}

// Replace builds and installs a new immutable snapshot from records. The
// previous snapshot is never mutated; in-flight readers keep using it.
func (d *DirectoryService) Replace(records []model.CompanyRecord) {
	byTicker := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := byTicker[r.Ticker]; !dup {
			byTicker[r.Ticker] = i
		}
	}
	d.snapshot.Store(&DirectorySnapshot{
		Records:  records,
		byTicker: byTicker,
		LoadedAt: time.Now(),
	})
}

// Snapshot returns the current directory view. Never nil.
func (d *DirectoryService) Snapshot() *DirectorySnapshot {
	return d.snapshot.Load().(*DirectorySnapshot)
}

// StartRefresh reloads the directory on the given interval until ctx ends.
// A failed refresh keeps the previous snapshot.
func (d *DirectoryService) StartRefresh(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := d.Load(ctx); err != nil {
					log.Warn().Err(err).Msg("Directory refresh failed, keeping previous snapshot")
				}
			}
		}
	}()
}
