package data

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shadyar-bakr/storefront/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Password  Password  `json:"-"`
}

type Password struct {
	Plaintext *string
	Hash      []byte
}

var (
	ErrPasswordTooShort       = errors.New("password must be at least 6 bytes long")
	ErrPasswordTooLong        = errors.New("password must not be more than 72 bytes long")
	ErrPasswordRequired       = errors.New("password is required")
	ErrPasswordHashGeneration = errors.New("failed to generate password hash")
	ErrPasswordHashComparison = errors.New("failed to compare password hash")
	ErrDuplicateEmail         = errors.New("duplicate email")
)

// DemoAccount is a login seeded into the store at startup.
type DemoAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var DemoAccounts = []DemoAccount{
	{Name: "Admin User", Email: "admin@example.com", Password: "admin123", Role: RoleAdmin},
	{Name: "Regular User", Email: "user@example.com", Password: "user123", Role: RoleUser},
}

func ValidatePasswordPlaintext(v *validator.Validator, password string) {
	v.Check(password != "", "password", ErrPasswordRequired.Error())
	v.Check(len(password) >= 6, "password", ErrPasswordTooShort.Error())
	v.Check(len(password) <= 72, "password", ErrPasswordTooLong.Error())
}

func (p *Password) Set(plaintextPassword string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), cost)
	if err != nil {
		return ErrPasswordHashGeneration
	}

	p.Plaintext = &plaintextPassword
	p.Hash = hash
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, ErrPasswordHashComparison
		}
	}
	return true, nil
}

type UserModel struct {
	mu    sync.RWMutex
	users []*User
}

// NewUserModel hashes each account with the given bcrypt cost and stores it.
func NewUserModel(cost int, accounts ...DemoAccount) (*UserModel, error) {
	m := &UserModel{}
	for _, a := range accounts {
		user := &User{
			Name:   a.Name,
			Email:  a.Email,
			Role:   a.Role,
			Avatar: "/api/placeholder/40/40",
		}
		if err := user.Password.Set(a.Password, cost); err != nil {
			return nil, err
		}
		// Demo accounts never expose their plaintext after seeding.
		user.Password.Plaintext = nil

		if err := m.Insert(user); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *UserModel) Insert(user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}

	user.ID = int64(len(m.users) + 1)
	user.CreatedAt = time.Now()

	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *UserModel) GetByEmail(email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			user := *u
			return &user, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *UserModel) Get(id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			user := *u
			return &user, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *UserModel) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
