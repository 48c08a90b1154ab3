package sumanthropic

import "github.com/Abraxas-365/convmem/pkg/errx"

var errorRegistry = errx.NewRegistry("SUM_ANTHROPIC")

var (
	ErrMissingAPIKey = errorRegistry.Register("MISSING_API_KEY", errx.TypeValidation, "Anthropic API key is missing")
	ErrAPIRequest    = errorRegistry.Register("API_REQUEST", errx.TypeExternal, "Anthropic API request failed")
)
