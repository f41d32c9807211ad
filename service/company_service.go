package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"backend/customerrors"
	"backend/model"
	"backend/util"

	"github.com/agnivade/levenshtein"
	gocache "github.com/patrickmn/go-cache"
)

// Match-score ladder. Exact hits score highest, prefix and substring hits sit
// between, and anything below falls through to the edit-distance blend. Only
// relative ordering is contractual.
const (
	scoreExactTicker  = 1.0
	scoreExactName    = 0.98
	scoreTickerPrefix = 0.9
	scoreNamePrefix   = 0.85
	scoreSubstring    = 0.8
	scoreWordPrefix   = 0.75
	scoreThreshold    = 0.3
)

type CompanyService interface {
	Search(query string, limit int) (*model.SearchResult, error)
	Resolve(query string) (*model.MatchResult, error)
}

type CompanyServiceImpl struct {
	directory   *DirectoryService
	results     *gocache.Cache
	minQueryLen int
	maxResults  int
}

func NewCompanyService(directory *DirectoryService, cfg *model.EnvConfig) CompanyService {
	return &CompanyServiceImpl{
		directory:   directory,
		results:     gocache.New(5*time.Minute, 10*time.Minute),
		minQueryLen: cfg.MinSearchQueryLength,
		maxResults:  cfg.MaxSearchResults,
	}
}

// Search scores query against the directory snapshot and returns matches in
// ranked order: score descending, exact match types before fuzzy on ties,
// then name ascending.
func (s *CompanyServiceImpl) Search(query string, limit int) (*model.SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < s.minQueryLen {
		return nil, customerrors.NewValidationError("q",
			"query must be at least "+strconv.Itoa(s.minQueryLen)+" characters")
	}
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}

	normalized := util.NormalizeQuery(trimmed)
	cacheKey := "search:" + normalized + ":" + strconv.Itoa(limit)
	if cached, found := s.results.Get(cacheKey); found {
		return cached.(*model.SearchResult), nil
	}

	started := time.Now()
	snapshot := s.directory.Snapshot()
	qTokens := util.Tokenize(normalized)

	// Exact ticker hits resolve through the snapshot index; the scan below
	// skips them so the indexed record is the only exact_ticker result.
	var matches []model.MatchResult
	if rec, ok := snapshot.ByTicker(normalized); ok {
		matches = append(matches, model.MatchResult{
			Company:    rec,
			MatchScore: scoreExactTicker,
			MatchType:  model.MatchExactTicker,
		})
	}
	for _, rec := range snapshot.Records {
		score, matchType := scoreRecord(normalized, qTokens, rec)
		if matchType == model.MatchExactTicker {
			continue
		}
		if score > scoreThreshold {
			matches = append(matches, model.MatchResult{
				Company:    rec,
				MatchScore: score,
				MatchType:  matchType,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		if matches[i].MatchType.Exact() != matches[j].MatchType.Exact() {
			return matches[i].MatchType.Exact()
		}
		return matches[i].Company.Name < matches[j].Company.Name
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := &model.SearchResult{
		Query:        trimmed,
		Results:      matches,
		TotalResults: total,
		TookMs:       time.Since(started).Milliseconds(),
	}
	if total == 0 {
		result.Suggestions = []string{
			"Try searching with the ticker symbol",
			"Include the company suffix (Inc, Corp, Ltd)",
			"Check spelling and try again",
		}
	}

	s.results.Set(cacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

// Resolve returns the single best match for query, or ErrCompanyNotFound.
func (s *CompanyServiceImpl) Resolve(query string) (*model.MatchResult, error) {
	result, err := s.Search(query, 1)
	if err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, customerrors.ErrCompanyNotFound
	}
	return &result.Results[0], nil
}

func scoreRecord(nq string, qTokens []string, rec model.CompanyRecord) (float64, model.MatchType) {
	ticker := strings.ToLower(rec.Ticker)
	name := util.NormalizeQuery(rec.Name)

	switch {
	case nq == ticker:
		return scoreExactTicker, model.MatchExactTicker
	case nq == name:
		return scoreExactName, model.MatchExactName
	case strings.HasPrefix(ticker, nq):
		return scoreTickerPrefix, model.MatchFuzzyTicker
	case strings.HasPrefix(name, nq):
		return scoreNamePrefix, model.MatchFuzzyName
	case strings.Contains(name, nq):
		return scoreSubstring, model.MatchFuzzyName
	}
	for _, word := range util.Tokenize(name) {
		if strings.HasPrefix(word, nq) {
			return scoreWordPrefix, model.MatchFuzzyName
		}
	}

	// Edit-distance blend, scaled to stay below the word-prefix tier.
	nameScore := scoreWordPrefix * (0.6*tokenOverlap(qTokens, name) + 0.4*similarity(nq, name))
	tickerScore := scoreWordPrefix * similarity(nq, ticker)
	if tickerScore > nameScore {
		return tickerScore, model.MatchFuzzyTicker
	}
	return nameScore, model.MatchFuzzyName
}

// tokenOverlap is the fraction of query tokens that prefix some name token.
func tokenOverlap(qTokens []string, name string) float64 {
	if len(qTokens) == 0 {
		return 0
	}
	nameTokens := util.Tokenize(name)
	hits := 0
	for _, qt := range qTokens {
		for _, nt := range nameTokens {
			if strings.HasPrefix(nt, qt) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(qTokens))
}

// similarity is normalized Levenshtein similarity in [0,1].
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}
