package sumopenai

import "github.com/Abraxas-365/convmem/pkg/errx"

var errorRegistry = errx.NewRegistry("SUM_OPENAI")

var (
	ErrMissingAPIKey = errorRegistry.Register("MISSING_API_KEY", errx.TypeValidation, "OpenAI API key is missing")
	ErrAPIRequest    = errorRegistry.Register("API_REQUEST", errx.TypeExternal, "OpenAI API request failed")
)
