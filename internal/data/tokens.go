package data

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"errors"
	"sync"
	"time"

	"github.com/shadyar-bakr/storefront/internal/validator"
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

const ScopeAuthentication = "authentication"

type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func generateToken(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token := &Token{
		UserID: userID,
		Expiry: time.Now().Add(ttl),
		Scope:  scope,
	}

	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	token.Plaintext = base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := sha256.Sum256([]byte(token.Plaintext))
	token.Hash = hash[:]

	return token, nil
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}

// TokenModel keeps session tokens in memory, keyed by their SHA-256 hash.
type TokenModel struct {
	mu     sync.Mutex
	tokens map[[sha256.Size]byte]Token
}

func NewTokenModel() *TokenModel {
	return &TokenModel{tokens: make(map[[sha256.Size]byte]Token)}
}

func (m *TokenModel) New(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token, err := generateToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}

	m.Insert(token)
	return token, nil
}

func (m *TokenModel) Insert(token *Token) {
	var key [sha256.Size]byte
	copy(key[:], token.Hash)

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *token
	stored.Plaintext = ""
	m.tokens[key] = stored
}

// UserID resolves a plaintext token to the user it was issued for. Expired
// tokens are removed on lookup.
func (m *TokenModel) UserID(scope, tokenPlaintext string) (int64, error) {
	key := sha256.Sum256([]byte(tokenPlaintext))

	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.tokens[key]
	if !ok || token.Scope != scope {
		return 0, ErrInvalidToken
	}

	if time.Now().After(token.Expiry) {
		delete(m.tokens, key)
		return 0, ErrExpiredToken
	}

	return token.UserID, nil
}

func (m *TokenModel) Delete(tokenPlaintext string) {
	key := sha256.Sum256([]byte(tokenPlaintext))

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
}

func (m *TokenModel) DeleteAllForUser(scope string, userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, token := range m.tokens {
		if token.Scope == scope && token.UserID == userID {
			delete(m.tokens, key)
		}
	}
}
