package rule

const (
	CR byte = '\r'
	LF byte = '\n'
	SP byte = ' '
)

var (
	CRLF = []byte{CR, LF}

	// FieldSeparator splits a field line into name and value.
	FieldSeparator = []byte{':', SP}
)

func IsDigit(c byte) bool { return '0' <= c && c <= '9' }
