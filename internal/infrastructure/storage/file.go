// Package storage provides the durable persistence boundary behind the
// session store: two string-keyed slots (token, serialized user) with
// write-through semantics. Backends: a local file, or a box-local redis.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// persisted is the on-disk slot pair.
type persisted struct {
	Token string `json:"token"`
	User  string `json:"user,omitempty"`
}

// envelope wraps the slots on disk. When sealed, Data holds nonce+box and
// Salt the scrypt salt; otherwise Data is the plain JSON slots.
type envelope struct {
	Sealed bool   `json:"sealed"`
	Salt   []byte `json:"salt,omitempty"`
	Data   []byte `json:"data"`
}

// FileStorage persists the session to a single JSON file, optionally sealed
// at rest with a key derived from a passphrase.
type FileStorage struct {
	path       string
	passphrase string
}

func NewFileStorage(path, passphrase string) *FileStorage {
	return &FileStorage{path: path, passphrase: passphrase}
}

func (f *FileStorage) Load(ctx context.Context) (string, string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", nil
		}
		return "", "", err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", "", fmt.Errorf("storage: malformed session file: %w", err)
	}

	data := env.Data
	if env.Sealed {
		if f.passphrase == "" {
			return "", "", errors.New("storage: session file is sealed but no seal key is configured")
		}
		data, err = unseal(env, f.passphrase)
		if err != nil {
			return "", "", err
		}
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return "", "", fmt.Errorf("storage: malformed session slots: %w", err)
	}
	return p.Token, p.User, nil
}

func (f *FileStorage) Save(ctx context.Context, token, userJSON string) error {
	plain, err := json.Marshal(persisted{Token: token, User: userJSON})
	if err != nil {
		return err
	}

	env := envelope{Data: plain}
	if f.passphrase != "" {
		env, err = seal(plain, f.passphrase)
		if err != nil {
			return err
		}
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write cannot leave a truncated file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStorage) Delete(ctx context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func deriveKey(passphrase string, salt []byte) (*[32]byte, error) {
	kb, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}
	var key [32]byte
	copy(key[:], kb)
	return &key, nil
}

func seal(plain []byte, passphrase string) (envelope, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return envelope{}, err
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return envelope{}, err
	}
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return envelope{}, err
	}
	boxed := secretbox.Seal(nonce[:], plain, &nonce, key)
	return envelope{Sealed: true, Salt: salt, Data: boxed}, nil
}

func unseal(env envelope, passphrase string) ([]byte, error) {
	if len(env.Data) < 24 {
		return nil, errors.New("storage: sealed data too short")
	}
	key, err := deriveKey(passphrase, env.Salt)
	if err != nil {
		return nil, err
	}
	var nonce [24]byte
	copy(nonce[:], env.Data[:24])
	plain, ok := secretbox.Open(nil, env.Data[24:], &nonce, key)
	if !ok {
		return nil, errors.New("storage: failed to unseal session file")
	}
	return plain, nil
}
