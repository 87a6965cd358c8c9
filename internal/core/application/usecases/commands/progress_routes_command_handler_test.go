package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewProgressRoutesCommand(t *testing.T) {
	cmd, err := commands.NewProgressRoutesCommand(6*time.Hour, 50)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, cmd.Dwell())
	assert.Equal(t, 50, cmd.BatchSize())

	_, err = commands.NewProgressRoutesCommand(0, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "dwell")
	assert.Contains(t, err.Error(), "batch size")

	require.ErrorIs(t, commands.ProgressRoutesCommand{}.Validate(), commands.ErrProgressRoutesCommandIsNotConstructed)
}

// progressUoW expects one Begin/Get/Update cycle for s. A nil updateErr commits.
func progressUoW(t *testing.T, s *shipment.Shipment, updateErr error) *MockShipmentUoW {
	t.Helper()
	ctx := t.Context()

	repo := new(MockShipmentRepository)
	repo.On("Get", ctx, s.Code()).Return(s, nil).Once()
	repo.On("Update", ctx, s).Return(updateErr).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	if updateErr == nil {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})
	return uow
}

func listingUoW(t *testing.T, limit int, codes []tracking.Code, err error) *MockShipmentUoW {
	t.Helper()

	repo := new(MockShipmentRepository)
	repo.On("ListDueForProgress", t.Context(), mock.AnythingOfType("time.Time"), limit).Return(codes, err).Once()

	uow := new(MockShipmentUoW)
	uow.On("ShipmentRepository").Return(repo).Once()
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})
	return uow
}

func TestProgressRoutesCommandHandler_Handle_AdvancesDueShipments(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProgressRoutesCommand(time.Minute, 10)
	require.NoError(t, err)

	first := testShipment(t, kernel.NewUUID())
	skipped := testShipment(t, kernel.NewUUID())
	third := testShipment(t, kernel.NewUUID())
	require.NoError(t, third.AdvanceRoute(2, third.CreatedAt()))

	before := time.Now()
	listRepo := new(MockShipmentRepository)
	listRepo.On("ListDueForProgress", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.After(before) && cutoff.After(before.Add(-2*time.Minute))
	}), 10).Return([]tracking.Code{first.Code(), skipped.Code(), third.Code()}, nil).Once()
	listing := new(MockShipmentUoW)
	listing.On("ShipmentRepository").Return(listRepo).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(listing).Once()
	factory.On("Create").Return(progressUoW(t, first, nil)).Once()
	factory.On("Create").Return(progressUoW(t, skipped, ports.ErrConcurrentUpdate)).Once()
	factory.On("Create").Return(progressUoW(t, third, nil)).Once()

	cache := new(MockTrackingCache)
	cache.On("Invalidate", ctx, first.Code().String()).Return(nil).Once()
	cache.On("Invalidate", ctx, third.Code().String()).Return(nil).Once()

	h := commands.NewProgressRoutesCommandHandler(factory, cache, nil)
	advanced, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, advanced)

	assert.Equal(t, 1, first.Route().CurrentIndex())
	assert.Equal(t, 3, third.Route().CurrentIndex())
	assert.True(t, third.Route().IsDelivered())

	listRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProgressRoutesCommandHandler_Handle_FailureDoesNotStopBatch(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProgressRoutesCommand(time.Minute, 5)
	require.NoError(t, err)

	broken := testShipment(t, kernel.NewUUID())
	failing := testShipment(t, kernel.NewUUID())
	healthy := testShipment(t, kernel.NewUUID())

	brokenRepo := new(MockShipmentRepository)
	brokenRepo.On("Get", ctx, broken.Code()).Return(nil, errors.New("stop 2: value is required: timestamp")).Once()
	brokenUoW := new(MockShipmentUoW)
	brokenUoW.On("Begin", ctx).Return(nil).Once()
	brokenUoW.On("ShipmentRepository").Return(brokenRepo).Once()
	brokenUoW.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(listingUoW(t, 5,
		[]tracking.Code{broken.Code(), failing.Code(), healthy.Code()}, nil)).Once()
	factory.On("Create").Return(brokenUoW).Once()
	factory.On("Create").Return(progressUoW(t, failing, errors.New("deadlock detected"))).Once()
	factory.On("Create").Return(progressUoW(t, healthy, nil)).Once()

	cache := new(MockTrackingCache)
	cache.On("Invalidate", ctx, healthy.Code().String()).Return(nil).Once()

	h := commands.NewProgressRoutesCommandHandler(factory, cache, nil)
	advanced, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, advanced)
	assert.Equal(t, 1, healthy.Route().CurrentIndex())

	brokenRepo.AssertExpectations(t)
	brokenUoW.AssertNotCalled(t, "Commit", ctx)
	factory.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProgressRoutesCommandHandler_Handle_NoLongerDue(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewProgressRoutesCommand(time.Hour, 5)
	require.NoError(t, err)

	s := testShipment(t, kernel.NewUUID())
	require.NoError(t, s.AdvanceRoute(1, time.Now()))

	repo := new(MockShipmentRepository)
	repo.On("Get", ctx, s.Code()).Return(s, nil).Once()
	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(listingUoW(t, 5, []tracking.Code{s.Code()}, nil)).Once()
	factory.On("Create").Return(uow).Once()

	h := commands.NewProgressRoutesCommandHandler(factory, nil, nil)
	advanced, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, advanced)
	assert.Equal(t, 1, s.Route().CurrentIndex())

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestProgressRoutesCommandHandler_Handle_NothingDue(t *testing.T) {
	cmd, err := commands.NewProgressRoutesCommand(time.Hour, 5)
	require.NoError(t, err)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(listingUoW(t, 5, []tracking.Code{}, nil)).Once()

	h := commands.NewProgressRoutesCommandHandler(factory, nil, nil)
	advanced, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Zero(t, advanced)
	factory.AssertExpectations(t)
}

func TestProgressRoutesCommandHandler_Handle_ListError(t *testing.T) {
	cmd, err := commands.NewProgressRoutesCommand(time.Hour, 5)
	require.NoError(t, err)
	listErr := errors.New("connection refused")

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(listingUoW(t, 5, nil, listErr)).Once()

	h := commands.NewProgressRoutesCommandHandler(factory, nil, nil)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, listErr)
}
