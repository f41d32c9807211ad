package validator

import (
	"testing"

	"backend/customerrors"
	"backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSearchRequest(t *testing.T) {
	err := ValidateSearchRequest(&model.SearchRequest{Query: "apple"})
	assert.NoError(t, err)

	err = ValidateSearchRequest(&model.SearchRequest{Query: "a"})
	var ve *customerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "query", ve.Field)

	err = ValidateSearchRequest(&model.SearchRequest{Query: ""})
	assert.ErrorAs(t, err, &ve)
}

func TestValidateTicker(t *testing.T) {
	for _, good := range []string{"A", "AAPL", "googl", " tsla ", "BRK.B", "RDS.A"} {
		got, err := ValidateTicker(good)
		require.NoError(t, err, "ticker %q", good)
		assert.NotEmpty(t, got)
	}

	for _, bad := range []string{"", "TOOLONG", "123", "AAPL!", "BRK.BBB"} {
		_, err := ValidateTicker(bad)
		var ve *customerrors.ValidationError
		require.ErrorAs(t, err, &ve, "ticker %q", bad)
		assert.Equal(t, "ticker", ve.Field)
	}
}

func TestValidateTickerNormalizes(t *testing.T) {
	got, err := ValidateTicker("  brk.b ")
	require.NoError(t, err)
	assert.Equal(t, "BRK.B", got)
}

func TestValidTicker(t *testing.T) {
	assert.True(t, ValidTicker("AAPL"))
	assert.True(t, ValidTicker("BRK.B"))
	assert.False(t, ValidTicker("aapl"), "lowercase input is the caller's problem")
	assert.False(t, ValidTicker("TOOLONG"))
}

func TestValidateCIK(t *testing.T) {
	got, err := ValidateCIK("320193")
	require.NoError(t, err)
	assert.Equal(t, "320193", got)

	got, err = ValidateCIK("CIK0000320193")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", got)

	for _, bad := range []string{"", "12345678901", "notacik"} {
		_, err := ValidateCIK(bad)
		var ve *customerrors.ValidationError
		require.ErrorAs(t, err, &ve, "cik %q", bad)
	}
}
