// Package jsonfile loads a raw catalog document from a JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shantanugsharp/chatbot-be/internal/core/catalog"
)

// ErrNotFound is returned when the catalog file does not exist.
var ErrNotFound = errors.New("jsonfile: catalog file not found")

type Source struct {
	Path string
}

// Load reads and decodes the file. Numbers keep their source form.
func (s Source) Load(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.Path, err)
	}
	raw, err := catalog.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", s.Path, err)
	}
	return raw, nil
}

func (s Source) Describe() string { return "json:" + s.Path }
