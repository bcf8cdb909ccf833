package section

// Magic byte sequences identifying the two header kinds defined by the BLF
// wire format.
var (
	FileMagic   = [4]byte{'L', 'O', 'G', 'G'}
	ObjectMagic = [4]byte{'L', 'O', 'B', 'J'}
)

// Fixed section sizes, in bytes.
const (
	// FileHeaderFixedSize is the portion of the file header decoded by
	// FileHeader.Parse; any remaining bytes up to the file's declared
	// header_size are reserved and skipped by the caller.
	FileHeaderFixedSize = 76

	// BaseHeaderSize is the size of the base object header shared by every
	// outer and inner object.
	BaseHeaderSize = 16

	// ContainerHeaderSize is the size of the LOG_CONTAINER sub-header
	// (compression method + uncompressed-size hint) that follows the base
	// header on every outer object.
	ContainerHeaderSize = 8

	// ExtHeaderV1Size is the size of the v1 extended header.
	ExtHeaderV1Size = 16
	// ExtHeaderV2Size is the size of the v2 extended header.
	ExtHeaderV2Size = 40
)

// AlignPad returns the number of padding bytes needed to round n up to a
// 4-byte boundary.
func AlignPad(n uint32) uint32 {
	return (4 - (n % 4)) % 4
}
