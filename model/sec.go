package model

// Filing is one SEC filing entry. AccessionNumber is the uniqueness key,
// formatted NNNNNNNNNN-YY-NNNNNN. FilingDate is an ISO date (YYYY-MM-DD).
type Filing struct {
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
	FilingURL       string `json:"filing_url"`
	CIK             string `json:"cik"`
	IsXBRL          bool   `json:"is_xbrl"`
}

// SECTickerEntry is one record of www.sec.gov/files/company_tickers.json.
// The file is a JSON object keyed by row index.
type SECTickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// SECSubmissionsResponse is the shape of data.sec.gov/submissions/CIK{cik}.json.
type SECSubmissionsResponse struct {
	CIK        string     `json:"cik"`
	EntityName string     `json:"name"`
	Filings    SECFilings `json:"filings"`
}

type SECFilings struct {
	Recent SECRecentFilings `json:"recent"`
}

// SECRecentFilings holds column-parallel arrays; index i across all slices
// describes one filing.
type SECRecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
	IsXBRL          []int    `json:"isXBRL"`
}
