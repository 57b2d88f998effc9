package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/config"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/dto"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"
	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── In-memory UserRepository stub ────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func authFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, repo := authFixture(t)
	seedUser(t, repo, "reception1", "s3cret-pw", "reception", true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "reception1", Password: "s3cret-pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "reception", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := authFixture(t)
	seedUser(t, repo, "reception1", "s3cret-pw", "reception", true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "reception1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	svc, repo := authFixture(t)
	seedUser(t, repo, "exstaff", "s3cret-pw", "reception", false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "exstaff", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, repo := authFixture(t)
	seedUser(t, repo, "admin1", "s3cret-pw", "admin", true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin1", Password: "s3cret-pw"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "admin1", refreshed.User.Username)
}

func TestRefresh_GarbageTokenRejected(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_DeactivatedUserRejected(t *testing.T) {
	svc, repo := authFixture(t)
	user := seedUser(t, repo, "doctor1", "s3cret-pw", "doctor", true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "doctor1", Password: "s3cret-pw"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, repo := authFixture(t)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "newstaff",
		Name:     "New Staff",
		Password: "long-enough-pw",
		Role:     "reception",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	stored, err := repo.FindByUsername(context.Background(), "newstaff")
	require.NoError(t, err)
	assert.NotEqual(t, "long-enough-pw", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-pw")))
}

func TestListUsers_ExcludesInactiveByDefault(t *testing.T) {
	svc, repo := authFixture(t)
	seedUser(t, repo, "active1", "s3cret-pw", "reception", true)
	seedUser(t, repo, "gone1", "s3cret-pw", "reception", false)

	visible, err := svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := svc.ListUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
