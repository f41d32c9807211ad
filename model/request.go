package model

// RequestOptions identifies the caller for rate limiting and log correlation.
type RequestOptions struct {
	ClientKey string
	RequestID string
}

// LookupOptions controls which sub-fetches a company lookup performs.
type LookupOptions struct {
	RequestOptions
	IncludeStock   bool
	IncludeFilings bool
	FilingsLimit   int
}

// SearchRequest is the validated shape of a company search.
type SearchRequest struct {
	Query string
	Limit int
}

// FilingsRequest is the validated shape of a filings history fetch.
type FilingsRequest struct {
	CIK       string
	FormTypes []string
	Limit     int
}
