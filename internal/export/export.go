package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rana718/dataforge/internal/table"
)

// ErrUpstreamAbsent reports that a domain has no output on disk yet.
var ErrUpstreamAbsent = errors.New("upstream data absent")

type codec interface {
	write(dir, domain string, tables []*table.Table) error
	read(dir, domain string, schemas []table.Schema) ([]*table.Table, error)
}

// Store persists generated domains under root, one directory per domain.
type Store struct {
	root   string
	format string
	codec  codec
}

func NewStore(root, format string) (*Store, error) {
	var c codec
	switch format {
	case "csv", "":
		format, c = "csv", csvCodec{}
	case "json":
		c = jsonCodec{}
	case "sqlite":
		c = sqliteCodec{}
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Store{root: root, format: format, codec: c}, nil
}

func (s *Store) Root() string   { return s.root }
func (s *Store) Format() string { return s.format }

func (s *Store) DomainDir(domain string) string {
	return filepath.Join(s.root, domain)
}

// WriteDomain writes every table of a domain into a staging directory and
// moves it into place once all of them succeeded. On failure the previous
// output of the domain, if any, is left untouched.
func (s *Store) WriteDomain(domain string, tables []*table.Table) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	staging := filepath.Join(s.root, "."+domain+".staging")
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := s.codec.write(staging, domain, tables); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to write domain %s: %w", domain, err)
	}

	final := s.DomainDir(domain)
	if err := os.RemoveAll(final); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to replace domain %s: %w", domain, err)
	}
	if err := os.Rename(staging, final); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("failed to publish domain %s: %w", domain, err)
	}
	return nil
}

// ReadDomain reads a domain written by WriteDomain in the store's format.
// A missing domain yields ErrUpstreamAbsent.
func (s *Store) ReadDomain(domain string, schemas []table.Schema) ([]*table.Table, error) {
	dir := s.DomainDir(domain)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamAbsent, domain)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return s.codec.read(dir, domain, schemas)
}

// missing wraps a missing table file as an absent upstream, so that a
// domain directory written by an older schema falls back like a missing one.
func missing(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrUpstreamAbsent, path)
	}
	return err
}
