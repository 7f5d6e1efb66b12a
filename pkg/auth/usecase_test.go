package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users map[string]User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user User) error {
	if _, ok := r.users[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	u, ok := r.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type staticTokens struct{}

func (staticTokens) Generate(ctx context.Context, user User) (string, error) {
	return "token-" + user.Email, nil
}

func TestRegister_StoresHashedPasswordAndNormalizesEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, staticTokens{})

	res, err := svc.Register(context.Background(), " Rita ", "  Rita@Example.COM ", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, "rita@example.com", res.User.Email)
	assert.Equal(t, "Rita", res.User.Name)
	assert.Equal(t, "token-rita@example.com", res.Token)
	assert.NotEqual(t, "s3cretpass", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("s3cretpass")))

	stored, err := repo.GetByEmail(context.Background(), "rita@example.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, stored.ID)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "Rita", "rita@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Rita", "RITA@example.com", "different")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_RejectsEmptyCredentials(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "Rita", "", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "Rita", "rita@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Rita", "rita@example.com", "s3cretpass")
	require.NoError(t, err)

	res, err := svc.Login(ctx, " RITA@example.com ", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "Rita", "rita@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "rita@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), staticTokens{})

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
