// Package yamlutil reads and writes the YAML configuration files through
// goccy/go-yaml, with a size cap and unknown-key rejection.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps YAML input (1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkSize(n int64) error {
	if n > int64(MaxInputSize) {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, n, MaxInputSize)
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects keys that v does not declare.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if err := checkSize(int64(len(data))); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ReadFile strictly decodes the YAML file at path into v. The size cap is
// checked before the file is read.
func ReadFile(path string, v any) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := checkSize(info.Size()); err != nil {
		return err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path chosen by the operator
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}

// Marshal encodes v with two-space indentation and literal blocks for
// multi-line strings.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
