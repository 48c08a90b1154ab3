package memxredis

import "github.com/Abraxas-365/convmem/pkg/errx"

var redisErrors = errx.NewRegistry("MEMX_REDIS")

var (
	ErrGet       = redisErrors.Register("GET", errx.TypeExternal, "Redis summary read failed")
	ErrUpsert    = redisErrors.Register("UPSERT", errx.TypeExternal, "Redis summary write failed")
	ErrDelete    = redisErrors.Register("DELETE", errx.TypeExternal, "Redis summary delete failed")
	ErrMarshal   = redisErrors.Register("MARSHAL", errx.TypeInternal, "Failed to marshal summary record")
	ErrUnmarshal = redisErrors.Register("UNMARSHAL", errx.TypeInternal, "Failed to unmarshal summary record")
)
