package expr

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/autocrate/autocrate/pkg/errors"
)

// Render produces the expressions file bytes.
func (s *Set) Render() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	var buf bytes.Buffer
	for _, l := range s.lines {
		switch l.kind {
		case kindBlank:
			buf.WriteByte('\n')
		case kindComment:
			buf.WriteString("// ")
			buf.WriteString(l.value)
			buf.WriteByte('\n')
		case kindEntry:
			if l.unit != "" {
				buf.WriteByte('[')
				buf.WriteString(l.unit)
				buf.WriteByte(']')
			}
			buf.WriteString(l.name)
			buf.WriteString(" = ")
			buf.WriteString(l.value)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// WriteFile writes the rendered data to path atomically: the bytes go
// to a temp file in the same directory first and are renamed into
// place, so a failed run never leaves a partial expressions file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".autocrate-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "rename into %s", path)
	}
	return nil
}
