package sqlite

import (
	"context"
	"fmt"
)

// Source loads a catalog from one table. The database is opened read-only
// per load so an external rewrite of the file is picked up on the next reload.
type Source struct {
	Path  string
	Table string
}

func (s Source) Load(ctx context.Context) (any, error) {
	a, err := NewAdapter("file:" + s.Path + "?mode=ro")
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.LoadTable(ctx, s.Table)
}

func (s Source) Describe() string {
	return fmt.Sprintf("sqlite:%s#%s", s.Path, s.Table)
}
