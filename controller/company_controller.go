package controller

import (
	"strings"

	"backend/model"
	"backend/service"
	"backend/validator"

	"github.com/gin-gonic/gin"
)

type CompanyController struct {
	aggregator service.AggregatorService
}

func NewCompanyController(aggregator service.AggregatorService) *CompanyController {
	return &CompanyController{aggregator: aggregator}
}

// RegisterRoutes sets up the lookup, search, stock and filings endpoints.
func (ctrl *CompanyController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", ctrl.Search)
	router.GET("/search/suggestions", ctrl.Suggestions)

	companyGroup := router.Group("/company")
	{
		companyGroup.GET("/lookup", ctrl.Lookup)
		companyGroup.GET("/:ticker", ctrl.GetByTicker)
	}

	stockGroup := router.Group("/stock")
	{
		stockGroup.GET("/batch", ctrl.BatchQuotes)
		stockGroup.GET("/:ticker", ctrl.GetStock)
	}

	router.GET("/filings/:cik", ctrl.GetFilings)
}

// Search handles free-text company search against the directory.
func (ctrl *CompanyController) Search(c *gin.Context) {
	req := model.SearchRequest{
		Query: c.Query("q"),
		Limit: queryInt(c, "limit", 10),
	}
	if err := validator.ValidateSearchRequest(&req); err != nil {
		failValidation(c, err)
		return
	}

	respond(c, ctrl.aggregator.Search(c.Request.Context(), req, requestOptions(c)))
}

// Suggestions handles autocomplete over the company directory.
func (ctrl *CompanyController) Suggestions(c *gin.Context) {
	req := model.SearchRequest{Query: c.Query("q")}
	if err := validator.ValidateSearchRequest(&req); err != nil {
		failValidation(c, err)
		return
	}

	limit := queryInt(c, "limit", 5)
	if limit < 1 || limit > 10 {
		limit = 5
	}
	respond(c, ctrl.aggregator.Suggest(c.Request.Context(), req.Query, limit, requestOptions(c)))
}

// Lookup handles the aggregated company view: identity, quote and filings.
func (ctrl *CompanyController) Lookup(c *gin.Context) {
	req := model.SearchRequest{Query: c.Query("q")}
	if err := validator.ValidateSearchRequest(&req); err != nil {
		failValidation(c, err)
		return
	}

	filingsLimit := queryInt(c, "filings_limit", 5)
	if filingsLimit < 1 || filingsLimit > 20 {
		filingsLimit = 5
	}
	opts := model.LookupOptions{
		RequestOptions: requestOptions(c),
		IncludeStock:   queryBool(c, "include_stock", true),
		IncludeFilings: queryBool(c, "include_filings", true),
		FilingsLimit:   filingsLimit,
	}

	respond(c, ctrl.aggregator.Lookup(c.Request.Context(), req.Query, opts))
}

// GetByTicker returns the directory entry for one exact ticker symbol.
func (ctrl *CompanyController) GetByTicker(c *gin.Context) {
	ticker, err := validator.ValidateTicker(c.Param("ticker"))
	if err != nil {
		failValidation(c, err)
		return
	}

	respond(c, ctrl.aggregator.CompanyByTicker(c.Request.Context(), ticker, requestOptions(c)))
}

// GetStock returns a single stock quote, extended when detailed=true.
func (ctrl *CompanyController) GetStock(c *gin.Context) {
	ticker, err := validator.ValidateTicker(c.Param("ticker"))
	if err != nil {
		failValidation(c, err)
		return
	}

	detailed := queryBool(c, "detailed", false)
	respond(c, ctrl.aggregator.StockBySymbol(c.Request.Context(), ticker, detailed, requestOptions(c)))
}

// BatchQuotes returns quotes for up to 20 tickers in one request. Tickers may
// be repeated query parameters or one comma-separated value.
func (ctrl *CompanyController) BatchQuotes(c *gin.Context) {
	var tickers []string
	for _, raw := range c.QueryArray("tickers") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
	}

	respond(c, ctrl.aggregator.BatchQuotes(c.Request.Context(), tickers, requestOptions(c)))
}

// GetFilings returns the SEC filings history for one CIK.
func (ctrl *CompanyController) GetFilings(c *gin.Context) {
	cik, err := validator.ValidateCIK(c.Param("cik"))
	if err != nil {
		failValidation(c, err)
		return
	}

	var formTypes []string
	if raw := c.Query("form_types"); raw != "" {
		for _, ft := range strings.Split(raw, ",") {
			if ft = strings.TrimSpace(ft); ft != "" {
				formTypes = append(formTypes, ft)
			}
		}
	}

	req := model.FilingsRequest{
		CIK:       cik,
		FormTypes: formTypes,
		Limit:     queryInt(c, "limit", 0),
	}
	respond(c, ctrl.aggregator.FilingsByCIK(c.Request.Context(), req, requestOptions(c)))
}
