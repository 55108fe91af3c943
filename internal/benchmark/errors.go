package benchmark

import "errors"

var (
	ErrUnknownTool     = errors.New("unknown benchmark tool")
	ErrUnknownSuite    = errors.New("unknown benchmark suite")
	ErrOutOfOrder      = errors.New("entry date is older than the last entry")
	ErrDuplicateCommit = errors.New("commit already recorded in suite")
	ErrDuplicateBench  = errors.New("duplicate bench name in entry")
	ErrMissingCommit   = errors.New("entry has no commit id")
	ErrNoBenches       = errors.New("entry has no benches")
	ErrMalformed       = errors.New("malformed benchmark data")
	ErrUnknownCommit   = errors.New("commit not found")
)
