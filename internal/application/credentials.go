package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

const secretRefPrefix = "fanthom"

// Credentials manages completion provider API keys in a secret store.
type Credentials struct {
	store ports.SecretStore
}

func NewCredentials(store ports.SecretStore) *Credentials {
	return &Credentials{store: store}
}

// SecretRef is the store key of a provider's API key.
func SecretRef(provider string) string {
	return secretRefPrefix + "/" + strings.ToLower(strings.TrimSpace(provider)) + "/api_key"
}

// SetAPIKey stores value under the provider's ref and returns the ref.
func (c *Credentials) SetAPIKey(ctx context.Context, provider, value string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", errors.New("provider is empty")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("api key is empty")
	}

	ref := SecretRef(provider)
	if err := c.store.Put(ctx, ref, value); err != nil {
		return "", fmt.Errorf("store api key: %w", err)
	}

	return ref, nil
}

func (c *Credentials) DeleteAPIKey(ctx context.Context, provider string) error {
	if err := c.store.Delete(ctx, SecretRef(provider)); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}

// ResolveAPIKey prefers an explicit value, then the secret stored under ref.
// A missing secret with no explicit value is reported as domain.ErrSecretNotFound.
func (c *Credentials) ResolveAPIKey(ctx context.Context, ref, explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("resolve api key: no key configured: %w", domain.ErrSecretNotFound)
	}

	value, err := c.store.Get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolve api key %q: %w", ref, err)
	}

	return value, nil
}
