// Package secrets provides encrypted API credential storage for CodeSage.
//
// The credential lives in the operating system keychain (macOS Keychain,
// Windows Credential Manager, or the freedesktop Secret Service on Linux),
// never in the config file. It is read once per annotate invocation and
// not retained in memory beyond the request that needs it.
package secrets

import (
	"errors"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keychain service name the credential is stored under.
	Service = "codesage"
	// Account is the keychain account name for the API key.
	Account = "api-key"
)

// ErrNotFound is returned by Get when no credential has been stored.
var ErrNotFound = errors.New("no API key stored")

// Store defines the interface for credential storage.
//
// No validation of the key format is performed; the key is an opaque
// string trimmed of surrounding whitespace.
type Store interface {
	Set(key string) error
	Get() (string, error)
	Delete() error
}

// KeyringStore implements Store on top of the OS keychain.
type KeyringStore struct {
	service string
	account string
}

// NewKeyringStore creates a KeyringStore using the fixed service and
// account identifiers.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		service: Service,
		account: Account,
	}
}

// Set trims and persists the key. An empty key after trimming is rejected.
func (s *KeyringStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	return keyring.Set(s.service, s.account, key)
}

// Get retrieves the stored key. Returns ErrNotFound if no key is stored.
func (s *KeyringStore) Get() (string, error) {
	key, err := keyring.Get(s.service, s.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return key, nil
}

// Delete removes the stored key. Deleting an absent key is not an error.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.service, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// MemoryStore implements Store in memory. Used in tests and as a
// fallback when no keychain is available.
type MemoryStore struct {
	mu  sync.Mutex
	key string
	set bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set trims and stores the key.
func (s *MemoryStore) Set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.set = true
	return nil
}

// Get returns the stored key or ErrNotFound.
func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ErrNotFound
	}
	return s.key, nil
}

// Delete removes the stored key.
func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	s.set = false
	return nil
}
