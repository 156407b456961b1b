package source

type (
	// FileID uniquely identifies a comment file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHasCRLF marks content that contains CRLF line breaks. Content is
	// never rewritten; the flag is informational.
	FileHasCRLF
	// FileHasBOM marks content that starts with a UTF-8 byte order mark.
	FileHasBOM
)

// File captures metadata and content for a single comment body.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
