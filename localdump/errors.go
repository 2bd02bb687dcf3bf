package localdump

import "errors"

// Hard failures abort the whole export; ErrWrite is recorded per article and
// the export keeps going.
var (
	// ErrInvalidInput means the caller asked us to export a collection
	// without saying which one.
	ErrInvalidInput = errors.New("localdump: collection ID is empty")

	// ErrDirectoryCreate means the destination directory couldn't be set
	// up, e.g. the path exists as a regular file or permissions forbid it.
	ErrDirectoryCreate = errors.New("localdump: couldn't create destination directory")

	// ErrWrite means one article couldn't be materialized on disk.
	ErrWrite = errors.New("localdump: couldn't write article file")
)
