package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

// runNamespace scopes run ids so that they never collide with UUIDs minted
// by other tools for the same seed.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Rana718/dataforge/run"))

type Manifest struct {
	RunID    string           `yaml:"run_id"`
	Seed     uint64           `yaml:"seed"`
	Format   string           `yaml:"format"`
	Domains  []DomainManifest `yaml:"domains"`
	Entities []EntityManifest `yaml:"entities"`
}

type DomainManifest struct {
	Name string `yaml:"name"`
	// Source is "generated", "loaded" (read back from an earlier run) or
	// "absent".
	Source string          `yaml:"source"`
	Tables []TableManifest `yaml:"tables,omitempty"`
}

type TableManifest struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
}

type EntityManifest struct {
	Name       string `yaml:"name"`
	Keys       int    `yaml:"keys"`
	Provenance string `yaml:"provenance"`
}

// RunID derives a stable identifier from the seed, so identical runs share
// an id.
func RunID(seed uint64) string {
	return uuid.NewSHA1(runNamespace, []byte(strconv.FormatUint(seed, 10))).String()
}

func (s *Store) WriteManifest(m *Manifest) error {
	m.Format = s.format
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func (s *Store) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.root, ManifestFile))
	if err != nil {
		return nil, missing(ManifestFile, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
