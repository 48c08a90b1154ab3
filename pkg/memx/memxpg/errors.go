package memxpg

import "github.com/Abraxas-365/convmem/pkg/errx"

var pgErrors = errx.NewRegistry("MEMX_PG")

var (
	ErrQuery  = pgErrors.Register("QUERY", errx.TypeExternal, "Postgres summary query failed")
	ErrUpsert = pgErrors.Register("UPSERT", errx.TypeExternal, "Postgres summary upsert failed")
	ErrDelete = pgErrors.Register("DELETE", errx.TypeExternal, "Postgres summary delete failed")
)
