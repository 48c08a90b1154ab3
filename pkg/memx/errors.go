package memx

import "github.com/Abraxas-365/convmem/pkg/errx"

var ErrRegistry = errx.NewRegistry("MEMX")

var (
	CodeStoreRead       = ErrRegistry.Register("STORE_READ", errx.TypeExternal, "Failed to read summary record")
	CodeStoreWrite      = ErrRegistry.Register("STORE_WRITE", errx.TypeExternal, "Failed to persist summary record")
	CodeStoreDelete     = ErrRegistry.Register("STORE_DELETE", errx.TypeExternal, "Failed to delete summary records")
	CodeSummaryNotFound = ErrRegistry.Register("SUMMARY_NOT_FOUND", errx.TypeNotFound, "Summary record not found")
	CodeSummarize       = ErrRegistry.Register("SUMMARIZE", errx.TypeExternal, "Summarization engine failed")
)

func ErrStoreRead(cause error) *errx.Error   { return ErrRegistry.NewWithCause(CodeStoreRead, cause) }
func ErrStoreWrite(cause error) *errx.Error  { return ErrRegistry.NewWithCause(CodeStoreWrite, cause) }
func ErrStoreDelete(cause error) *errx.Error { return ErrRegistry.NewWithCause(CodeStoreDelete, cause) }
func ErrSummaryNotFound() *errx.Error        { return ErrRegistry.New(CodeSummaryNotFound) }
func ErrSummarize(cause error) *errx.Error   { return ErrRegistry.NewWithCause(CodeSummarize, cause) }
