package service

import (
	"testing"

	"backend/customerrors"
	"backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyService() CompanyService {
	return NewCompanyService(seededDirectory(), testConfig())
}

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := newCompanyService()

	_, err := svc.Search("a", 10)

	var ve *customerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "q", ve.Field)
}

func TestSearchExactTickerRanksFirst(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("AAPL", 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)

	top := result.Results[0]
	assert.Equal(t, "AAPL", top.Company.Ticker)
	assert.Equal(t, 1.0, top.MatchScore)
	assert.Equal(t, model.MatchExactTicker, top.MatchType)
}

func TestSearchExactTickerComesFromIndex(t *testing.T) {
	directory := NewDirectoryService(nil)
	directory.Replace([]model.CompanyRecord{
		{Name: "First Co", Ticker: "DUP", CIK: "0000000001"},
		{Name: "Second Co", Ticker: "DUP", CIK: "0000000002"},
	})
	svc := NewCompanyService(directory, testConfig())

	result, err := svc.Search("dup", 10)
	require.NoError(t, err)

	exact := 0
	for _, m := range result.Results {
		if m.MatchType == model.MatchExactTicker {
			exact++
			assert.Equal(t, "First Co", m.Company.Name)
		}
	}
	assert.Equal(t, 1, exact, "the indexed record is the only exact ticker hit")
}

func TestSearchExactNameBeatsPrefixMatches(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("Apple Inc.", 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)

	top := result.Results[0]
	assert.Equal(t, "AAPL", top.Company.Ticker)
	assert.Equal(t, model.MatchExactName, top.MatchType)
}

func TestSearchNamePrefix(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("micro", 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)

	top := result.Results[0]
	assert.Equal(t, "MSFT", top.Company.Ticker)
	assert.Equal(t, model.MatchFuzzyName, top.MatchType)
}

func TestSearchScoresAreMonotonicallyDecreasing(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("inc", 10)
	require.NoError(t, err)
	require.True(t, len(result.Results) >= 2)

	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t,
			result.Results[i-1].MatchScore, result.Results[i].MatchScore,
			"results must be sorted by score descending")
	}
}

func TestSearchHonorsLimitAndReportsTotal(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("inc", 2)
	require.NoError(t, err)

	assert.Len(t, result.Results, 2)
	assert.Greater(t, result.TotalResults, 2)
}

func TestSearchNoMatchesYieldsSuggestions(t *testing.T) {
	svc := newCompanyService()

	result, err := svc.Search("zzqqxxyy", 10)
	require.NoError(t, err)

	assert.Empty(t, result.Results)
	assert.Zero(t, result.TotalResults)
	assert.NotEmpty(t, result.Suggestions)
}

func TestSearchMemoizesResults(t *testing.T) {
	svc := newCompanyService()

	first, err := svc.Search("apple", 5)
	require.NoError(t, err)
	second, err := svc.Search("apple", 5)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated searches should hit the memo cache")
}

func TestSearchIsCaseAndWhitespaceInsensitive(t *testing.T) {
	svc := newCompanyService()

	a, err := svc.Search("  TESLA  ", 5)
	require.NoError(t, err)
	b, err := svc.Search("tesla", 5)
	require.NoError(t, err)

	require.NotEmpty(t, a.Results)
	assert.Equal(t, a.Results[0].Company, b.Results[0].Company)
}

func TestResolveReturnsBestMatch(t *testing.T) {
	svc := newCompanyService()

	match, err := svc.Resolve("amazon")
	require.NoError(t, err)

	assert.Equal(t, "AMZN", match.Company.Ticker)
}

func TestResolveUnknownCompany(t *testing.T) {
	svc := newCompanyService()

	_, err := svc.Resolve("zzqqxxyy")

	assert.ErrorIs(t, err, customerrors.ErrCompanyNotFound)
}

func TestSearchEmptyDirectory(t *testing.T) {
	svc := NewCompanyService(NewDirectoryService(nil), testConfig())

	result, err := svc.Search("apple", 10)
	require.NoError(t, err)

	assert.Empty(t, result.Results)
}
