package models

// TransferStatus is the classified result of a transfer request
type TransferStatus string

const (
	// StatusCopied indicates the file was transferred
	StatusCopied TransferStatus = "copied"
	// StatusCopiedDueToMismatch indicates an existing destination differed and was overwritten
	StatusCopiedDueToMismatch TransferStatus = "copied_mismatch"
	// StatusSkippedAlreadyExists indicates the destination already matched the source
	StatusSkippedAlreadyExists TransferStatus = "skipped_exists"
	// StatusSkippedUnsupported indicates every download strategy failed
	StatusSkippedUnsupported TransferStatus = "skipped_unsupported"
)

// Transferred reports whether data was actually moved for this status
func (s TransferStatus) Transferred() bool {
	return s == StatusCopied || s == StatusCopiedDueToMismatch
}

// Skipped reports whether the request ended without moving data
func (s TransferStatus) Skipped() bool {
	return s == StatusSkippedAlreadyExists || s == StatusSkippedUnsupported
}

// TransferOutcome is produced once per request
type TransferOutcome struct {
	Status TransferStatus

	// ByteLength is the size of the transferred file, or of the matching
	// destination when skipped as already existing
	ByteLength uint64

	// SourceDeleted is true when a move removed the source
	SourceDeleted bool

	// TimestampSkipped is true when a download's modification time could
	// not be applied to the local file (out of range or unavailable)
	TimestampSkipped bool

	// Attempts is the number of download strategies that were tried
	Attempts int
}
