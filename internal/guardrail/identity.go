package guardrail

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Identity is the handle of a moderation policy created remotely for one
// profile. Never mutated in place: rotation means deleting and recreating.
type Identity struct {
	RemoteID  string    `json:"guardrail_id"`
	Version   string    `json:"guardrail_version"`
	ProfileID string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityStore persists one identity per profile id.
type IdentityStore interface {
	// Load returns nil without error when no identity is stored for the profile.
	Load(profileID string) (*Identity, error)
	Save(identity *Identity) error
	Delete(profileID string) error
}

// FileIdentityStore keeps one JSON file per profile under a directory.
// Writes are whole-file replaces, so a concurrent-creation race between two
// processes degrades to last-writer-wins, which is acceptable duplication.
type FileIdentityStore struct {
	dir string
}

func NewFileIdentityStore(dir string) (*FileIdentityStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create identity store dir: %w", err)
	}
	return &FileIdentityStore{dir: dir}, nil
}

func (s *FileIdentityStore) path(profileID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("guardrail_identity_%s.json", profileID))
}

func (s *FileIdentityStore) Load(profileID string) (*Identity, error) {
	data, err := os.ReadFile(s.path(profileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("invalid identity file for profile %s: %w", profileID, err)
	}
	if identity.RemoteID == "" || identity.Version == "" {
		return nil, fmt.Errorf("identity file for profile %s is missing id or version", profileID)
	}

	return &identity, nil
}

func (s *FileIdentityStore) Save(identity *Identity) error {
	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := os.WriteFile(s.path(identity.ProfileID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	return nil
}

func (s *FileIdentityStore) Delete(profileID string) error {
	if err := os.Remove(s.path(profileID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete identity file: %w", err)
	}
	return nil
}
