// Package notebook persists per-(persona, topic) reflection documents as
// markdown files, plus read-only background knowledge per persona.
package notebook

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a key does not match any stored notebook.
var ErrNotFound = errors.New("notebook not found")

// ErrInvalidKey is returned for keys that fail traversal validation.
var ErrInvalidKey = errors.New("invalid notebook key")

// Metadata describes a stored notebook without its content.
type Metadata struct {
	Exists   bool
	Modified time.Time
	Size     int64
}

// Info is one entry in a notebook listing.
type Info struct {
	Key       string    `json:"key"`
	PersonaID string    `json:"personaId"`
	Topic     string    `json:"topic"`
	Modified  time.Time `json:"lastModified"`
	Size      int64     `json:"size"`
}

// Store is the persistence surface the debate engine depends on.
// Read and Write degrade rather than fail: a missing or unreadable
// notebook reads as empty, and write failures are logged, not returned —
// the in-memory session keeps the intended content either way.
type Store interface {
	Read(personaID, topic string) string
	Write(personaID, topic, content string)
	Metadata(personaID, topic string) Metadata
	Knowledge(personaID string) string

	List() ([]Info, error)
	ReadKey(key string) (string, error)
	DeleteKey(key string) error
}

// FileStore keeps one markdown file per derived key under dir.
type FileStore struct {
	dir          string
	knowledgeDir string
}

// NewFileStore creates a FileStore rooted at dir, with persona knowledge
// files read from knowledgeDir.
func NewFileStore(dir, knowledgeDir string) *FileStore {
	return &FileStore{dir: dir, knowledgeDir: knowledgeDir}
}

// maxTopicKeyLen caps the sanitized topic portion of a key.
const maxTopicKeyLen = 50

// DeriveKey builds the stable storage key for a (persona, topic) pair.
// Characters that are unsafe in filenames are replaced and the topic is
// length-capped, so distinct topics can collide onto one notebook; that
// approximation is accepted.
func DeriveKey(personaID, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "untitled"
	}
	topic = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, topic)
	if runes := []rune(topic); len(runes) > maxTopicKeyLen {
		topic = string(runes[:maxTopicKeyLen])
	}
	return personaID + "-" + topic
}

// validateKey rejects keys that could escape the notebook directory.
func validateKey(key string) error {
	if key == "" ||
		strings.Contains(key, "..") ||
		strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".md")
}

// Read returns the stored notebook content, or "" when absent or
// unreadable.
func (fs *FileStore) Read(personaID, topic string) string {
	data, err := os.ReadFile(fs.path(DeriveKey(personaID, topic)))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read notebook", "persona", personaID, "topic", topic, "error", err)
		}
		return ""
	}
	return string(data)
}

// Write durably overwrites the notebook for the (persona, topic) pair.
// Failures are logged and swallowed.
func (fs *FileStore) Write(personaID, topic, content string) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		slog.Error("failed to create notebooks dir", "dir", fs.dir, "error", err)
		return
	}
	key := DeriveKey(personaID, topic)
	if err := os.WriteFile(fs.path(key), []byte(content), 0o644); err != nil {
		slog.Error("failed to write notebook", "key", key, "error", err)
	}
}

// Metadata reports existence and modification time for display purposes.
func (fs *FileStore) Metadata(personaID, topic string) Metadata {
	st, err := os.Stat(fs.path(DeriveKey(personaID, topic)))
	if err != nil {
		return Metadata{}
	}
	return Metadata{Exists: true, Modified: st.ModTime(), Size: st.Size()}
}

// Knowledge returns the persona's background-knowledge document, or ""
// when absent.
func (fs *FileStore) Knowledge(personaID string) string {
	if fs.knowledgeDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(fs.knowledgeDir, personaID+".md"))
	if err != nil {
		return ""
	}
	return string(data)
}

// List returns all stored notebooks, newest first.
func (fs *FileStore) List() ([]Info, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("reading notebooks dir: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		key := strings.TrimSuffix(e.Name(), ".md")
		// Key format is <personaID>-<topic>; skip files that don't match.
		dash := strings.Index(key, "-")
		if dash <= 0 {
			continue
		}
		st, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Key:       key,
			PersonaID: key[:dash],
			Topic:     strings.ReplaceAll(key[dash+1:], "_", " "),
			Modified:  st.ModTime(),
			Size:      st.Size(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Modified.After(infos[j].Modified) })
	return infos, nil
}

// ReadKey returns the content for a listing key.
func (fs *FileStore) ReadKey(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading notebook %q: %w", key, err)
	}
	return string(data), nil
}

// DeleteKey removes the notebook for a listing key.
func (fs *FileStore) DeleteKey(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(fs.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting notebook %q: %w", key, err)
	}
	return nil
}

// Ensure FileStore satisfies Store.
var _ Store = (*FileStore)(nil)
