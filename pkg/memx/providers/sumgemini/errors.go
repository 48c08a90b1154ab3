package sumgemini

import "github.com/Abraxas-365/convmem/pkg/errx"

var errorRegistry = errx.NewRegistry("SUM_GEMINI")

var (
	ErrClient     = errorRegistry.Register("CLIENT", errx.TypeInternal, "Failed to create Gemini client")
	ErrAPIRequest = errorRegistry.Register("API_REQUEST", errx.TypeExternal, "Gemini API request failed")
)
