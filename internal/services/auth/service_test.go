package auth

import (
	"testing"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users   map[string]*models.User
	nextID  uint
	deleted []uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) UpdateStatus(userID uint, status string) error { return nil }

func (f *fakeUserRepo) SetDeviceToken(userID uint, token string) error { return nil }

func (f *fakeUserRepo) Delete(id uint) error {
	f.deleted = append(f.deleted, id)
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) List() ([]models.User, error) { return nil, nil }

type fakeCollabRepo struct {
	linkedUserIDs map[uint]bool
}

func (f *fakeCollabRepo) GetByUserID(userID uint) (*models.Collaborator, error) {
	if f.linkedUserIDs[userID] {
		return &models.Collaborator{UserID: userID}, nil
	}
	return nil, repositories.ErrCollaboratorNotFound
}

func (f *fakeCollabRepo) ListUserIDsByElder(elderID uint) ([]uint, error) { return nil, nil }
func (f *fakeCollabRepo) ListByChief(chiefID uint) ([]models.Collaborator, error) {
	return nil, nil
}
func (f *fakeCollabRepo) Delete(id uint) error { return nil }

// fakeOTP short-circuits the engine: Verify hands back the stored user.
type fakeOTP struct {
	users     *fakeUserRepo
	issued    []string
	issueErr  error
	verifyErr error
}

func (f *fakeOTP) Issue(email string) error {
	if f.issueErr != nil {
		return f.issueErr
	}
	f.issued = append(f.issued, email)
	return nil
}

func (f *fakeOTP) Verify(email, code string) (*models.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.users.GetByEmail(email)
}

func (f *fakeOTP) Resend(email, ip string) error {
	return f.Issue(email)
}

func seedUser(repo *fakeUserRepo, email, password, role string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		Name:     "Test",
		Email:    email,
		Password: string(hash),
		Role:     role,
		Status:   models.StatusActive,
	}
	repo.Create(user)
	return user
}

func TestAuthService_RegisterChief(t *testing.T) {
	users := newFakeUserRepo()
	otpEngine := &fakeOTP{users: users}
	service := NewService(users, &fakeCollabRepo{}, otpEngine)

	require.NoError(t, service.RegisterChief("Ana", "ana@example.com", "secret1"))

	user, err := users.GetByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChief, user.Role)
	assert.Equal(t, models.StatusPending, user.Status)
	assert.Equal(t, []string{"ana@example.com"}, otpEngine.issued)

	// The stored password is a hash, never the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
}

func TestAuthService_RegisterChiefDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "ana@example.com", "secret1", models.RoleChief)
	service := NewService(users, &fakeCollabRepo{}, &fakeOTP{users: users})

	err := service.RegisterChief("Ana", "ana@example.com", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_RegisterChiefWeakPassword(t *testing.T) {
	users := newFakeUserRepo()
	service := NewService(users, &fakeCollabRepo{}, &fakeOTP{users: users})

	err := service.RegisterChief("Ana", "ana@example.com", "abc")
	var derr *domainerrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "WEAK_PASSWORD", derr.Code)
}

func TestAuthService_RegisterRollsBackOnEmailFailure(t *testing.T) {
	users := newFakeUserRepo()
	otpEngine := &fakeOTP{users: users, issueErr: domainerrors.ErrUpstreamFailure}
	service := NewService(users, &fakeCollabRepo{}, otpEngine)

	err := service.RegisterChief("Ana", "ana@example.com", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)

	// The half-created account must not survive, so the email can be retried.
	_, err = users.GetByEmail("ana@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	assert.Len(t, users.deleted, 1)
}

func TestAuthService_LoginUniformFailure(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "ana@example.com", "secret1", models.RoleChief)
	service := NewService(users, &fakeCollabRepo{}, &fakeOTP{users: users})

	// Unknown email and wrong password are indistinguishable.
	errUnknown := service.Login("ghost@example.com", "secret1")
	errWrongPass := service.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_LoginIssuesCode(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "ana@example.com", "secret1", models.RoleChief)
	otpEngine := &fakeOTP{users: users}
	service := NewService(users, &fakeCollabRepo{}, otpEngine)

	require.NoError(t, service.Login("ana@example.com", "secret1"))
	assert.Equal(t, []string{"ana@example.com"}, otpEngine.issued)
}

func TestAuthService_LoginElderRejectsOtherRoles(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(users, "chief@example.com", "secret1", models.RoleChief)
	seedUser(users, "vo@example.com", "unused", models.RoleElder)

	otpEngine := &fakeOTP{users: users}
	service := NewService(users, &fakeCollabRepo{}, otpEngine)

	assert.ErrorIs(t, service.LoginElder("chief@example.com"), domainerrors.ErrInvalidCredentials)
	assert.NoError(t, service.LoginElder("vo@example.com"))
}

func TestAuthService_VerifyOTPIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	user := seedUser(users, "ana@example.com", "secret1", models.RoleChief)
	service := NewService(users, &fakeCollabRepo{}, &fakeOTP{users: users})

	verified, token, err := service.VerifyOTP("ana@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_VerifyOTPUnlinkedCollaborator(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	linked := seedUser(users, "linked@example.com", "secret1", models.RoleCollaborator)
	seedUser(users, "orphan@example.com", "secret1", models.RoleCollaborator)

	collabs := &fakeCollabRepo{linkedUserIDs: map[uint]bool{linked.ID: true}}
	service := NewService(users, collabs, &fakeOTP{users: users})

	_, _, err := service.VerifyOTP("orphan@example.com", "123456")
	assert.ErrorIs(t, err, domainerrors.ErrCollaboratorNotLinked)

	_, token, err := service.VerifyOTP("linked@example.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_VerifyOTPPropagatesEngineFailure(t *testing.T) {
	users := newFakeUserRepo()
	service := NewService(users, &fakeCollabRepo{}, &fakeOTP{users: users, verifyErr: domainerrors.ErrCodeExpired})

	_, _, err := service.VerifyOTP("ana@example.com", "123456")
	assert.ErrorIs(t, err, domainerrors.ErrCodeExpired)
}
