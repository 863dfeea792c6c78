package compress

// Compress encodes and decodes layer tree content at rest.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

const (
	NameNop    = ""
	NameGZip   = "gzip"
	NameBrotli = "brotli"
	NameLZ4    = "lz4"
)

// ForName returns the codec recorded in a row's compression column. Unknown
// names fall back to the no-op codec.
func ForName(name string) Compress {
	switch name {
	case NameGZip:
		return NewGZip()
	case NameBrotli:
		return NewBrotli()
	case NameLZ4:
		return NewLZ4()
	default:
		return NewNop()
	}
}

type Nop struct {
}

func NewNop() Nop {
	return Nop{}
}

func (n Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (n Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}
