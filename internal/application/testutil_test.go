package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/internal/infrastructure/memory"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

const testSecret = "test-secret"

var errStorage = errors.New("storage unavailable")

type fixture struct {
	users    *memory.UserRepository
	kyc      *memory.KYCRepository
	denylist *memory.Denylist
	hasher   *helpers.PasswordHasher
	jwt      *helpers.JWTManager
	signup   *SignupService
	login    *LoginService
	reset    *PasswordResetService
	gate     *AuthGate
	userSvc  *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := helpers.NewNopLogger()
	f := &fixture{
		users:    memory.NewUserRepository(),
		kyc:      memory.NewKYCRepository(),
		denylist: memory.NewDenylist(),
		hasher:   helpers.NewPasswordHasher(bcrypt.MinCost),
		jwt:      helpers.NewJWTManager(testSecret, 30*time.Minute, time.Hour, time.Hour),
	}
	f.signup = NewSignupService(f.users, f.hasher, logger)
	f.login = NewLoginService(f.users, f.hasher, f.jwt, logger)
	f.reset = NewPasswordResetService(f.users, f.hasher, f.jwt, f.denylist, logger)
	f.gate = NewAuthGate(f.users, f.jwt, f.denylist, logger)
	f.userSvc = NewUserService(f.users, logger, nil, "", nil)
	return f
}

func (f *fixture) register(t *testing.T, email, password string) *entity.User {
	t.Helper()
	u, err := f.signup.Register(context.Background(), email, password)
	require.NoError(t, err)
	return u
}

// failingUsers fails every call with errStorage.
type failingUsers struct{}

func (failingUsers) Add(context.Context, *entity.User) error { return errStorage }
func (failingUsers) GetByID(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, errStorage
}
func (failingUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errStorage
}
func (failingUsers) Update(context.Context, *entity.User) error { return errStorage }
func (failingUsers) Patch(context.Context, uuid.UUID, repo.UserPatch) error { return errStorage }
func (failingUsers) UpdatePassword(context.Context, uuid.UUID, string) error { return errStorage }
func (failingUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, errStorage }
func (failingUsers) Delete(context.Context, uuid.UUID) error { return errStorage }
func (failingUsers) List(context.Context, repo.ListFilter) ([]*entity.User, error) {
	return nil, errStorage
}

// recordingPublisher captures published jobs.
type recordingPublisher struct {
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

func testHasher() *helpers.PasswordHasher { return helpers.NewPasswordHasher(bcrypt.MinCost) }
