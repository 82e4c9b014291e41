package port

// TextExtractor turns a document file into plain text. Implementations must
// release any file handle before returning.
type TextExtractor interface {
	Extract(path string) (string, error)
}
