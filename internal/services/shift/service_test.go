package shift

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// MockRepository реализует интерфейс shift.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveShift(ctx context.Context, record models.Shift) (int, error) {
	args := m.Called(ctx, record)
	return args.Int(0), args.Error(1)
}

func newTestService(repo Repository, openingCash float64) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService(repo, NewManager(openingCash), 10, logger)
}

func TestService_CheckInRequiresOpenShift(t *testing.T) {
	service := newTestService(new(MockRepository), 100)

	_, err := service.CheckIn("olga", "Alice")
	assert.ErrorIs(t, err, ErrNoActiveShift)

	service.OpenShift("olga", false)
	visitor, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, visitor.ID)
}

func TestService_OpenShiftSeededWithCarriedCash(t *testing.T) {
	service := newTestService(new(MockRepository), 250)

	snapshot := service.OpenShift("olga", false)
	assert.Equal(t, 250.0, snapshot.NominalCash)
	assert.Equal(t, 0.0, snapshot.Income)
	assert.Empty(t, snapshot.LeftVisitors)
}

func TestService_OpenShiftTwiceResumesSession(t *testing.T) {
	service := newTestService(new(MockRepository), 100)

	service.OpenShift("olga", false)
	_, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)

	// Повторный вход не открывает новую смену и не теряет посетителей
	service.OpenShift("olga", false)
	_, visitors, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestService_PreviewCheckout(t *testing.T) {
	service := newTestService(new(MockRepository), 100)
	service.OpenShift("olga", false)

	visitor, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)

	preview, err := service.PreviewCheckout("olga", visitor.ID)
	require.NoError(t, err)
	// Визит короче часа оплачивается как полный час
	assert.Equal(t, 10.0, preview.Visitor.Price)
	assert.NotEmpty(t, preview.Duration)

	// Предпросмотр ничего не меняет
	_, visitors, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Len(t, visitors, 1)

	_, err = service.PreviewCheckout("olga", "unknown-id")
	assert.ErrorIs(t, err, ErrVisitorNotFound)
}

func TestService_CheckOut(t *testing.T) {
	service := newTestService(new(MockRepository), 100)
	service.OpenShift("olga", false)

	visitor, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)

	left, err := service.CheckOut("olga", visitor.ID, "15.0")
	require.NoError(t, err)
	assert.Empty(t, left.ID)
	assert.Equal(t, 15.0, left.Paid)

	shiftView, visitors, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Empty(t, visitors)
	assert.Equal(t, 115.0, shiftView.NominalCash)
	assert.Equal(t, 15.0, shiftView.Income)

	// Повторный выход того же посетителя
	_, err = service.CheckOut("olga", visitor.ID, "15.0")
	assert.ErrorIs(t, err, ErrVisitorNotFound)
}

func TestService_CheckOutInvalidPaidKeepsRegistry(t *testing.T) {
	service := newTestService(new(MockRepository), 100)
	service.OpenShift("olga", false)

	visitor, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)

	_, err = service.CheckOut("olga", visitor.ID, "not-a-number")
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)

	// Посетитель всё ещё в реестре, журнал не изменился
	shiftView, visitors, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
	assert.Equal(t, 100.0, shiftView.NominalCash)
}

func TestService_Close(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveShift", mock.Anything, mock.MatchedBy(func(record models.Shift) bool {
		return record.Username == "olga" && record.RealCash == 95.0
	})).Return(7, nil).Once()

	service := newTestService(repo, 100)
	service.OpenShift("olga", false)

	record, err := service.Close(context.Background(), "olga", "95")
	require.NoError(t, err)
	assert.Equal(t, 7, record.ID)
	assert.Equal(t, 95.0, record.RealCash)

	// Сессия завершена, остаток перенесён в следующую смену
	_, _, err = service.CurrentView("olga")
	assert.ErrorIs(t, err, ErrNoActiveShift)

	next := service.OpenShift("olga", false)
	assert.Equal(t, 95.0, next.NominalCash)

	repo.AssertExpectations(t)
}

func TestService_CloseInvalidRealCash(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo, 100)
	service.OpenShift("olga", false)

	_, err := service.Close(context.Background(), "olga", "")
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "please fill 'real_cash' field", inputErr.Message)

	// Смена осталась открытой, сохранение не вызывалось
	_, _, err = service.CurrentView("olga")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SaveShift", mock.Anything, mock.Anything)
}

func TestService_ClosePersistFailureKeepsShiftOpen(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveShift", mock.Anything, mock.Anything).Return(0, errors.New("db down")).Once()

	service := newTestService(repo, 100)
	service.OpenShift("olga", false)
	_, err := service.CheckIn("olga", "Alice")
	require.NoError(t, err)

	_, err = service.Close(context.Background(), "olga", "95")
	require.Error(t, err)

	// Смена открыта, состояние нетронуто, оператор может повторить закрытие
	shiftView, visitors, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
	assert.Equal(t, 100.0, shiftView.NominalCash)

	repo.AssertExpectations(t)
}

func TestService_Discharge(t *testing.T) {
	service := newTestService(new(MockRepository), 100)
	service.OpenShift("olga", false)

	require.NoError(t, service.Discharge("olga", "20.0", "supplies"))

	shiftView, _, err := service.CurrentView("olga")
	require.NoError(t, err)
	assert.Equal(t, 80.0, shiftView.NominalCash)
	assert.Equal(t, 20.0, shiftView.Outcome)
	assert.Equal(t, -20.0, shiftView.Profit)

	err = service.Discharge("olga", "oops", "supplies")
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "amount", inputErr.Field)
}
