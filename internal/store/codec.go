package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/hrnet/internal/models"
)

// ErrMalformedState is returned when a persisted value cannot be decoded.
var ErrMalformedState = errors.New("malformed persisted state")

// PersistMeta is the rehydration metadata kept next to the record list.
type PersistMeta struct {
	Version    int  `json:"version"`
	Rehydrated bool `json:"rehydrated"`
}

// envelope mirrors the persisted layout: every top-level value is itself a JSON document encoded as a string.
type envelope struct {
	List    string `json:"list"`
	Persist string `json:"_persist"`
}

var defaultMeta = PersistMeta{Version: -1, Rehydrated: true}

// Encode serialises the store into the single string value kept under the storage key.
func Encode(s Store) (string, error) {
	employees := s.employees
	if employees == nil {
		employees = []models.Employee{}
	}

	list, err := json.Marshal(employees)
	if err != nil {
		return "", fmt.Errorf("failed to encode employee list: %w", err)
	}

	meta, err := json.Marshal(defaultMeta)
	if err != nil {
		return "", fmt.Errorf("failed to encode persist metadata: %w", err)
	}

	out, err := json.Marshal(envelope{List: string(list), Persist: string(meta)})
	if err != nil {
		return "", fmt.Errorf("failed to encode persisted state: %w", err)
	}

	return string(out), nil
}

// Decode restores a store from a value produced by Encode.
func Decode(value string) (Store, error) {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return Store{}, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	if env.List == "" {
		return Store{}, nil
	}

	var employees []models.Employee
	if err := json.Unmarshal([]byte(env.List), &employees); err != nil {
		return Store{}, fmt.Errorf("%w: employee list: %w", ErrMalformedState, err)
	}

	return New(employees...), nil
}

// DecodeMeta returns the rehydration metadata of a persisted value.
func DecodeMeta(value string) (PersistMeta, error) {
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err != nil {
		return PersistMeta{}, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	var meta PersistMeta
	if err := json.Unmarshal([]byte(env.Persist), &meta); err != nil {
		return PersistMeta{}, fmt.Errorf("%w: metadata: %w", ErrMalformedState, err)
	}

	return meta, nil
}
