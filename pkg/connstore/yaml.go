package connstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/consts"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// entry is the on-disk representation of one Connection: the DSN is
// stored sealed, everything else in the clear.
type entry struct {
	Name         string     `yaml:"name"`
	EncryptedDSN string     `yaml:"encrypted_dsn"`
	Description  string     `yaml:"description,omitempty"`
	CreatedAt    time.Time  `yaml:"created_at"`
	LastUsedAt   *time.Time `yaml:"last_used_at,omitempty"`
}

type document struct {
	Connections []entry `yaml:"connections"`
}

// YAMLStore is a Store backed by a single encrypted-at-rest YAML file.
type YAMLStore struct {
	fs   afero.Fs
	path string
	key  *[keySize]byte
}

// NewYAMLStore returns a YAMLStore that reads and writes path on fs,
// sealing every DSN under key.
func NewYAMLStore(fs afero.Fs, path string, key *[keySize]byte) *YAMLStore {
	return &YAMLStore{fs: fs, path: path, key: key}
}

// LoadOrCreateKey reads a base64-encoded 32-byte key from path, or
// generates and persists a new random one (mode 0600) if the file
// doesn't yet exist.
func LoadOrCreateKey(fs afero.Fs, path string) (*[keySize]byte, error) {
	if data, err := afero.ReadFile(fs, path); err == nil {
		raw, err := base64.StdEncoding.DecodeString(string(data))
		if err != nil {
			return nil, errors.Wrap(err, "connstore: decoding key file")
		}
		if len(raw) != keySize {
			return nil, errors.Errorf("connstore: key file %q has wrong length", path)
		}
		var key [keySize]byte
		copy(key[:], raw)
		return &key, nil
	}

	var key [keySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, errors.Wrap(err, "connstore: generating key")
	}
	encoded := base64.StdEncoding.EncodeToString(key[:])
	if err := afero.WriteFile(fs, path, []byte(encoded), consts.ModeSecret); err != nil {
		return nil, errors.Wrap(err, "connstore: persisting key")
	}
	return &key, nil
}

func (s *YAMLStore) load() (document, error) {
	var doc document
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, errors.Wrap(err, "connstore: reading store")
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, errors.Wrap(err, "connstore: parsing store")
	}
	return doc, nil
}

func (s *YAMLStore) save(doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "connstore: encoding store")
	}
	return errors.Wrap(afero.WriteFile(s.fs, s.path, data, consts.ModeSecret), "connstore: writing store")
}

// Save inserts or overwrites the profile named conn.Name.
func (s *YAMLStore) Save(_ context.Context, conn Connection) error {
	sealed, err := sealDSN(s.key, conn.DSN)
	if err != nil {
		return err
	}

	doc, err := s.load()
	if err != nil {
		return err
	}

	e := entry{
		Name:         conn.Name,
		EncryptedDSN: sealed,
		Description:  conn.Description,
		CreatedAt:    conn.CreatedAt,
		LastUsedAt:   conn.LastUsedAt,
	}

	replaced := false
	for i, existing := range doc.Connections {
		if existing.Name == conn.Name {
			doc.Connections[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Connections = append(doc.Connections, e)
	}

	return s.save(doc)
}

// Load returns the named profile with its DSN decrypted.
func (s *YAMLStore) Load(_ context.Context, name string) (Connection, error) {
	doc, err := s.load()
	if err != nil {
		return Connection{}, err
	}

	for _, e := range doc.Connections {
		if e.Name != name {
			continue
		}
		dsn, err := openDSN(s.key, e.EncryptedDSN)
		if err != nil {
			return Connection{}, err
		}
		return Connection{
			Name:        e.Name,
			DSN:         dsn,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			LastUsedAt:  e.LastUsedAt,
		}, nil
	}

	return Connection{}, ErrNotFound(name)
}

// List returns every saved profile (DSN decrypted), sorted by name.
func (s *YAMLStore) List(_ context.Context) ([]Connection, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	conns := make([]Connection, 0, len(doc.Connections))
	for _, e := range doc.Connections {
		dsn, err := openDSN(s.key, e.EncryptedDSN)
		if err != nil {
			return nil, errors.Wrapf(err, "connstore: decrypting %q", e.Name)
		}
		conns = append(conns, Connection{
			Name:        e.Name,
			DSN:         dsn,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			LastUsedAt:  e.LastUsedAt,
		})
	}

	sort.Slice(conns, func(i, j int) bool { return conns[i].Name < conns[j].Name })
	return conns, nil
}

// Delete removes the named profile. It is not an error to delete a
// profile that doesn't exist.
func (s *YAMLStore) Delete(_ context.Context, name string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	filtered := doc.Connections[:0]
	for _, e := range doc.Connections {
		if e.Name != name {
			filtered = append(filtered, e)
		}
	}
	doc.Connections = filtered

	return s.save(doc)
}

var _ Store = (*YAMLStore)(nil)
