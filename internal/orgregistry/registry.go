// Package orgregistry verifies Norwegian organisation numbers against a
// fixed catalog bundled with the binary.
package orgregistry

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var embedded []byte

// ErrOrgNotFound is returned for well-formed numbers missing from the catalog.
var ErrOrgNotFound = errors.New("organisation not found")

type Organisation struct {
	OrgNumber    string `yaml:"org_number"`
	Name         string `yaml:"name"`
	Municipality string `yaml:"municipality"`
}

type catalog struct {
	Organisations []Organisation `yaml:"organisations"`
}

// Registry is an immutable lookup table keyed by organisation number.
type Registry struct {
	byNumber map[string]Organisation
}

// Default returns the registry bundled with the binary.
func Default() *Registry {
	r, err := Parse(bytes.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("orgregistry: embedded catalog: %v", err))
	}
	return r
}

// Load reads a catalog file, for deployments that ship their own list.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening org catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Registry, error) {
	var c catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding org catalog: %w", err)
	}
	reg := &Registry{byNumber: make(map[string]Organisation, len(c.Organisations))}
	for i, o := range c.Organisations {
		if err := domain.ValidateOrgNumber(o.OrgNumber); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if strings.TrimSpace(o.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d (%s): name is required", i, o.OrgNumber)
		}
		if _, dup := reg.byNumber[o.OrgNumber]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate org number %s", i, o.OrgNumber)
		}
		reg.byNumber[o.OrgNumber] = o
	}
	return reg, nil
}

// Lookup resolves an organisation number. Malformed numbers fail the
// format check before the table is consulted.
func (r *Registry) Lookup(ctx context.Context, orgNumber string) (Organisation, error) {
	if err := ctx.Err(); err != nil {
		return Organisation{}, err
	}
	orgNumber = strings.TrimSpace(orgNumber)
	if err := domain.ValidateOrgNumber(orgNumber); err != nil {
		return Organisation{}, err
	}
	o, ok := r.byNumber[orgNumber]
	if !ok {
		return Organisation{}, fmt.Errorf("%w: %s", ErrOrgNotFound, orgNumber)
	}
	return o, nil
}

func (r *Registry) Len() int { return len(r.byNumber) }
