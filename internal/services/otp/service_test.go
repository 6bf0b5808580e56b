package otp

import (
	"testing"
	"time"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOTPRepo is an in-memory stand-in preserving the repository's
// ordering and single-use semantics.
type fakeOTPRepo struct {
	nextID uint
	codes  []*models.VerificationCode
	logs   []models.OTPResendLog
}

func (f *fakeOTPRepo) CreateCode(code *models.VerificationCode) error {
	f.nextID++
	code.ID = f.nextID
	code.CreatedAt = time.Now()
	stored := *code
	f.codes = append(f.codes, &stored)
	return nil
}

func (f *fakeOTPRepo) LatestMatching(email, code string) (*models.VerificationCode, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		c := f.codes[i]
		if c.Email == email && c.Code == code && !c.Used {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repositories.ErrCodeNotFound
}

func (f *fakeOTPRepo) MarkUsed(id uint) error {
	for _, c := range f.codes {
		if c.ID == id && !c.Used {
			c.Used = true
			return nil
		}
	}
	return repositories.ErrCodeNotFound
}

func (f *fakeOTPRepo) InvalidateUnused(email string) error {
	for _, c := range f.codes {
		if c.Email == email {
			c.Used = true
		}
	}
	return nil
}

func (f *fakeOTPRepo) LogResend(email, ip string, at time.Time) error {
	f.logs = append(f.logs, models.OTPResendLog{Email: email, IP: ip, SentAt: at})
	return nil
}

func (f *fakeOTPRepo) CountRecentResends(email, ip string, since time.Time) (int64, error) {
	var count int64
	for _, l := range f.logs {
		if l.Email == email && l.IP == ip && l.SentAt.After(since) {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error {
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

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(userID uint, status string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Status = status
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) SetDeviceToken(userID uint, token string) error { return nil }

func (f *fakeUserRepo) Delete(id uint) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) List() ([]models.User, error) { return nil, nil }

// recordingSender captures outbound mail so tests can read the code back.
type recordingSender struct {
	sent []struct{ to, subject, body string }
	err  error
}

func (s *recordingSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, struct{ to, subject, body string }{to, subject, body})
	return nil
}

func newTestService(repo *fakeOTPRepo, users *fakeUserRepo, sender *recordingSender) Service {
	return NewService(repo, users, sender, Config{})
}

func pendingUser(email string) *models.User {
	u := &models.User{
		Email:  email,
		Role:   models.RoleChief,
		Status: models.StatusPending,
	}
	u.ID = 1
	return u
}

func TestOTPService_IssueAndVerify(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	sender := &recordingSender{}
	service := newTestService(repo, users, sender)

	require.NoError(t, service.Issue("ana@example.com"))
	require.Len(t, repo.codes, 1)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].body, repo.codes[0].Code)

	user, err := service.Verify("ana@example.com", repo.codes[0].Code)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.Status)

	// A consumed code never validates again.
	_, err = service.Verify("ana@example.com", repo.codes[0].Code)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)
}

func TestOTPService_VerifyWrongCode(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	service := newTestService(repo, users, &recordingSender{})

	require.NoError(t, service.Issue("ana@example.com"))

	_, err := service.Verify("ana@example.com", "000000")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)
}

func TestOTPService_VerifyExpiredCode(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	service := newTestService(repo, users, &recordingSender{})

	expired := &models.VerificationCode{
		Email:     "ana@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.CreateCode(expired))

	// Expired is reported distinctly from a wrong code.
	_, err := service.Verify("ana@example.com", "123456")
	assert.ErrorIs(t, err, domainerrors.ErrCodeExpired)

	_, err = service.Verify("ana@example.com", "654321")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)
}

func TestOTPService_ResendThrottle(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	service := newTestService(repo, users, &recordingSender{})

	for i := 0; i < 3; i++ {
		require.NoError(t, service.Resend("ana@example.com", "10.0.0.1"))
	}

	err := service.Resend("ana@example.com", "10.0.0.1")
	assert.ErrorIs(t, err, domainerrors.ErrResendLimitExceeded)

	// The limit is keyed on (email, ip) jointly.
	assert.NoError(t, service.Resend("ana@example.com", "10.0.0.2"))
	assert.NoError(t, service.Resend("bob@example.com", "10.0.0.1"))
}

func TestOTPService_ResendInvalidatesPriorCodes(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	service := newTestService(repo, users, &recordingSender{})

	require.NoError(t, service.Issue("ana@example.com"))
	first := repo.codes[0].Code

	require.NoError(t, service.Resend("ana@example.com", "10.0.0.1"))

	_, err := service.Verify("ana@example.com", first)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	latest := repo.codes[len(repo.codes)-1]
	_, err = service.Verify("ana@example.com", latest.Code)
	assert.NoError(t, err)
}

func TestOTPService_IssueFailsWhenEmailFails(t *testing.T) {
	repo := &fakeOTPRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"ana@example.com": pendingUser("ana@example.com"),
	}}
	sender := &recordingSender{err: assert.AnError}
	service := newTestService(repo, users, sender)

	err := service.Issue("ana@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamFailure)

	// No verification row survives a failed send; a registration rolled
	// back on this error leaves no orphan code behind.
	assert.Empty(t, repo.codes)
	_, err = service.Verify("ana@example.com", "123456")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)
}
