package output

import "github.com/tadeyemo32/career26-vanguard/internal/core"

// EncodedFormatter renders a single result as an indented JSON or YAML
// document.
type EncodedFormatter struct {
	Format Format
}

func (f *EncodedFormatter) FormatBatch(result *core.BatchResult) (string, error) {
	if result == nil {
		return "", nil
	}
	rendered, _, err := encode(f.Format, result)
	return rendered, err
}
