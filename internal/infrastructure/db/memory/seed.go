package memory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

// seedFile is the on-disk shape of SEED_FILE.
//
//	principals:
//	  - username: johndoe
//	    full_name: John Doe
//	    email: johndoe@example.com
//	    disabled: false
//	    password_hash: $2a$10$...
type seedFile struct {
	Principals []seedPrincipal `yaml:"principals"`
}

type seedPrincipal struct {
	Username     string `yaml:"username"`
	FullName     string `yaml:"full_name"`
	Email        string `yaml:"email"`
	Disabled     bool   `yaml:"disabled"`
	PasswordHash string `yaml:"password_hash"`
}

// LoadSeedFile reads principal records from a YAML file. Digests are taken
// as-is; produce them with cmd/hashpw.
func LoadSeedFile(path string) ([]domain.CredentialRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML seed content.
func ParseSeed(raw []byte) ([]domain.CredentialRecord, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	out := make([]domain.CredentialRecord, 0, len(f.Principals))
	for i, p := range f.Principals {
		if p.Username == "" {
			return nil, fmt.Errorf("parse seed: principal %d has no username", i)
		}
		if p.PasswordHash == "" {
			return nil, fmt.Errorf("parse seed: principal %q has no password_hash", p.Username)
		}
		out = append(out, domain.CredentialRecord{
			Principal: domain.Principal{
				Username: p.Username,
				FullName: p.FullName,
				Email:    p.Email,
				Disabled: p.Disabled,
			},
			PasswordHash: p.PasswordHash,
		})
	}
	return out, nil
}

// DemoPrincipals returns the built-in demo account (johndoe / secret), hashed
// with hasher at call time.
func DemoPrincipals(hasher ports.PasswordHasher) ([]domain.CredentialRecord, error) {
	digest, err := hasher.Hash("secret")
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return []domain.CredentialRecord{{
		Principal: domain.Principal{
			Username: "johndoe",
			FullName: "John Doe",
			Email:    "johndoe@example.com",
		},
		PasswordHash: digest,
	}}, nil
}

// Seed inserts records into store, failing on the first duplicate username.
func Seed(ctx context.Context, store ports.CredentialStore, records []domain.CredentialRecord) error {
	for i := range records {
		if err := store.Create(ctx, &records[i]); err != nil {
			return fmt.Errorf("seed %q: %w", records[i].Username, err)
		}
	}
	return nil
}
