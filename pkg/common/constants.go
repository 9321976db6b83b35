package common

const (
	// MockUserID owns every portfolio item until authentication exists.
	MockUserID uint = 1

	FinnhubCachePrefix = "finnhub"

	OpGetQuote          = "get_quote"
	OpGetFundamentals   = "get_fundamentals"
	OpGetCompanyProfile = "get_company_profile"

	ProviderFinnhub = "finnhub"
	ProviderYahoo   = "yahoo"
)
