package emergency

import (
	"testing"

	domainerrors "amparo/internal/errors"
	"amparo/internal/models"
	"amparo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmergencyRepo struct {
	alerts []*models.Emergency
}

func (f *fakeEmergencyRepo) Create(alert *models.Emergency) error {
	alert.ID = uint(len(f.alerts) + 1)
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeEmergencyRepo) ListVisibleTo(userID uint) ([]models.Emergency, error) {
	var out []models.Emergency
	for _, a := range f.alerts {
		if a.ChiefID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeEmergencyRepo) Resolve(alertID uint) error {
	for _, a := range f.alerts {
		if a.ID == alertID {
			a.Resolved = true
			return nil
		}
	}
	return repositories.ErrAlertNotFound
}

type fakeElderRepo struct {
	elder *models.Elder
}

func (f *fakeElderRepo) GetByID(id uint) (*models.Elder, error) {
	if f.elder != nil && f.elder.ID == id {
		return f.elder, nil
	}
	return nil, repositories.ErrElderNotFound
}

func (f *fakeElderRepo) GetByCPF(cpf string) (*models.Elder, error) {
	return nil, repositories.ErrElderNotFound
}

func (f *fakeElderRepo) GetOwned(id, chiefID uint) (*models.Elder, error) {
	return nil, repositories.ErrElderNotFound
}

func (f *fakeElderRepo) ListByChief(chiefID uint) ([]models.Elder, error) { return nil, nil }
func (f *fakeElderRepo) List() ([]models.Elder, error) { return nil, nil }
func (f *fakeElderRepo) Update(elder *models.Elder) error { return nil }
func (f *fakeElderRepo) DeleteWithLogin(elder *models.Elder) error { return nil }

type fakeCollabRepo struct {
	userIDs []uint
}

func (f *fakeCollabRepo) GetByUserID(userID uint) (*models.Collaborator, error) {
	return nil, repositories.ErrCollaboratorNotFound
}

func (f *fakeCollabRepo) ListUserIDsByElder(elderID uint) ([]uint, error) {
	return f.userIDs, nil
}

func (f *fakeCollabRepo) ListByChief(chiefID uint) ([]models.Collaborator, error) {
	return nil, nil
}

func (f *fakeCollabRepo) Delete(id uint) error { return nil }

// recordingNotifier captures fan-out targets.
type recordingNotifier struct {
	delivered map[uint]Alert
}

func (n *recordingNotifier) Notify(targetID uint, alert Alert) {
	if n.delivered == nil {
		n.delivered = make(map[uint]Alert)
	}
	n.delivered[targetID] = alert
}

func testElder() *models.Elder {
	elder := &models.Elder{Name: "Dona Maria", ChiefID: 1}
	elder.ID = 10
	return elder
}

func TestEmergencyService_TriggerFansOutToChiefAndCollaborators(t *testing.T) {
	repo := &fakeEmergencyRepo{}
	notifier := &recordingNotifier{}
	service := NewService(repo, &fakeElderRepo{elder: testElder()}, &fakeCollabRepo{userIDs: []uint{5, 9}}, notifier)

	elderProfileID := uint(10)
	alert, err := service.Trigger(&elderProfileID)
	require.NoError(t, err)

	// Exactly one persisted row regardless of notification outcomes.
	require.Len(t, repo.alerts, 1)
	assert.Equal(t, uint(10), alert.ElderID)
	assert.Equal(t, uint(1), alert.ChiefID)
	assert.False(t, alert.Resolved)

	// Chief plus both collaborators, nobody else.
	require.Len(t, notifier.delivered, 3)
	for _, target := range []uint{1, 5, 9} {
		delivered, ok := notifier.delivered[target]
		require.True(t, ok, "target %d not notified", target)
		assert.Equal(t, alert.ID, delivered.AlertID)
		assert.Equal(t, "Dona Maria", delivered.ElderName)
		assert.Contains(t, delivered.Message, "Dona Maria")
	}
}

func TestEmergencyService_TriggerWithoutCollaborators(t *testing.T) {
	repo := &fakeEmergencyRepo{}
	notifier := &recordingNotifier{}
	service := NewService(repo, &fakeElderRepo{elder: testElder()}, &fakeCollabRepo{}, notifier)

	elderProfileID := uint(10)
	_, err := service.Trigger(&elderProfileID)
	require.NoError(t, err)
	assert.Len(t, notifier.delivered, 1)
}

func TestEmergencyService_TriggerRequiresElderLogin(t *testing.T) {
	service := NewService(&fakeEmergencyRepo{}, &fakeElderRepo{}, &fakeCollabRepo{}, &recordingNotifier{})

	_, err := service.Trigger(nil)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestEmergencyService_TriggerUnknownElder(t *testing.T) {
	service := NewService(&fakeEmergencyRepo{}, &fakeElderRepo{}, &fakeCollabRepo{}, &recordingNotifier{})

	elderProfileID := uint(99)
	_, err := service.Trigger(&elderProfileID)
	assert.ErrorIs(t, err, domainerrors.ErrElderNotFound)
}

func TestEmergencyService_Resolve(t *testing.T) {
	repo := &fakeEmergencyRepo{}
	service := NewService(repo, &fakeElderRepo{elder: testElder()}, &fakeCollabRepo{}, &recordingNotifier{})

	elderProfileID := uint(10)
	alert, err := service.Trigger(&elderProfileID)
	require.NoError(t, err)

	require.NoError(t, service.Resolve(alert.ID))
	assert.True(t, repo.alerts[0].Resolved)

	err = service.Resolve(999)
	var derr *domainerrors.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "NOT_FOUND", derr.Code)
}
