package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/cache"
	"backend/customerrors"
	"backend/model"
	"backend/util"

	"github.com/rs/zerolog/log"
)

const secArchivesBase = "https://www.sec.gov/Archives/edgar/data"

// FilingsProvider is the outbound surface the filings service needs; the SEC
// client satisfies it.
type FilingsProvider interface {
	FetchSubmissions(ctx context.Context, cik string) (*model.SECSubmissionsResponse, error)
}

type FilingsService interface {
	// GetRecentFilings returns up to limit filings for cik, newest first, and
	// whether they were served from cache. formTypes filters when non-empty.
	GetRecentFilings(ctx context.Context, cik string, formTypes []string, limit int) ([]model.Filing, bool, error)
}

type FilingsServiceImpl struct {
	provider     FilingsProvider
	cache        *cache.TTLCache
	ttl          time.Duration
	defaultLimit int
	maxLimit     int
}

func NewFilingsService(provider FilingsProvider, ttlCache *cache.TTLCache, cfg *model.EnvConfig) FilingsService {
	return &FilingsServiceImpl{
		provider:     provider,
		cache:        ttlCache,
		ttl:          time.Duration(cfg.FilingsTTLSeconds) * time.Second,
		defaultLimit: cfg.DefaultFilingsLimit,
		maxLimit:     cfg.MaxFilingsPerRequest,
	}
}

func (s *FilingsServiceImpl) GetRecentFilings(ctx context.Context, cik string, formTypes []string, limit int) ([]model.Filing, bool, error) {
	normalized, ok := util.NormalizeCIK(cik)
	if !ok {
		return nil, false, customerrors.NewValidationError("cik", "must be 1-10 digits")
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	key := cache.Key("sec", "filings", normalized, strings.Join(formTypes, ","), strconv.Itoa(limit))
	if cached, found := s.cache.Get(key); found {
		return cached.([]model.Filing), true, nil
	}

	sub, err := s.provider.FetchSubmissions(ctx, normalized)
	if err != nil {
		return nil, false, err
	}

	filings := parseFilings(sub, normalized, formTypes, limit)
	s.cache.Set(key, filings, s.ttl)
	log.Debug().Str("cik", normalized).Int("filings", len(filings)).Msg("SEC filings fetched")
	return filings, false, nil
}

// parseFilings flattens the column-parallel recent arrays into Filing values,
// deduplicated by accession number and sorted by filing date descending.
func parseFilings(sub *model.SECSubmissionsResponse, cik string, formTypes []string, limit int) []model.Filing {
	recent := sub.Filings.Recent

	wanted := make(map[string]bool, len(formTypes))
	for _, ft := range formTypes {
		if ft = strings.ToUpper(strings.TrimSpace(ft)); ft != "" {
			wanted[ft] = true
		}
	}

	seen := make(map[string]bool)
	filings := make([]model.Filing, 0, limit)
	for i := range recent.Form {
		if len(wanted) > 0 && !wanted[strings.ToUpper(recent.Form[i])] {
			continue
		}
		accession := formatAccession(recent.AccessionNumber[i])
		if accession == "" || seen[accession] {
			continue
		}
		seen[accession] = true

		filings = append(filings, model.Filing{
			Form:            recent.Form[i],
			FilingDate:      recent.FilingDate[i],
			AccessionNumber: accession,
			FilingURL:       filingURL(cik, accession, column(recent.PrimaryDocument, i), recent.Form[i]),
			CIK:             cik,
			IsXBRL:          column(recent.IsXBRL, i) == 1,
		})
	}

	// ISO dates sort correctly as strings.
	sort.SliceStable(filings, func(i, j int) bool {
		return filings[i].FilingDate > filings[j].FilingDate
	})
	if len(filings) > limit {
		filings = filings[:limit]
	}
	return filings
}

// formatAccession normalizes an accession number to NNNNNNNNNN-YY-NNNNNN.
func formatAccession(raw string) string {
	digits := strings.ReplaceAll(raw, "-", "")
	if len(digits) != 18 {
		return raw
	}
	return digits[:10] + "-" + digits[10:12] + "-" + digits[12:]
}

func filingURL(cik, accession, primaryDocument, form string) string {
	if primaryDocument == "" {
		primaryDocument = strings.ToLower(strings.ReplaceAll(form, "-", "")) + ".htm"
	}
	return secArchivesBase + "/" + cik + "/" + strings.ReplaceAll(accession, "-", "") + "/" + primaryDocument
}

// column guards reads of optional parallel arrays that may be shorter.
func column[T any](col []T, i int) T {
	var zero T
	if i < len(col) {
		return col[i]
	}
	return zero
}
