package commands_test

import (
	"errors"
	"testing"
	"time"

	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/domain/services"
	"scantrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, decision services.Decision) *commands.ScanSessions {
	t.Helper()
	sessions := commands.NewScanSessions(time.Minute, fixedClock(t0))
	session, err := sessions.Begin("tablet-1")
	require.NoError(t, err)
	_, err = sessions.Await(session, ord1, decision)
	require.NoError(t, err)
	return sessions
}

func TestDecideNewOrderCommandHandler_Park(t *testing.T) {
	tests := []struct {
		action commands.NewOrderAction
		status order.Status
	}{
		{commands.ActionToBePrepared, order.ToBePrepared},
		{commands.ActionPending, order.PendingIssue},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			ctx := t.Context()
			sessions := openSession(t, services.NewOrderDetected)

			repo := new(MockOrderRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("Get", ctx, ord1).Return(nil, errs.NewObjectNotFoundError("order", ord1)).Once(),
				repo.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			cmd, err := commands.NewDecideNewOrderCommand("tablet-1", tt.action, "ignored")
			require.NoError(t, err)
			assert.Empty(t, cmd.OperatorID())

			h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
			created, err := h.Handle(ctx, cmd)
			require.NoError(t, err)

			assert.Equal(t, tt.status, created.Status())
			assert.Equal(t, t0, created.CreationTime())
			assert.Zero(t, sessions.Open())
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestDecideNewOrderCommandHandler_AssignStartsImmediately(t *testing.T) {
	ctx := t.Context()
	sessions := openSession(t, services.NewOrderDetected)

	orders := new(MockOrderRepository)
	operators := new(MockOperatorRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, ord1).Return(nil, errs.NewObjectNotFoundError("order", ord1)).Once(),
		uow.On("OperatorRepository").Return(operators).Once(),
		operators.On("Get", ctx, "A1").Return(ana, nil).Once(),
		orders.On("Upsert", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionAssign, "A1")
	require.NoError(t, err)

	h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.InProgress, created.Status())
	assert.Equal(t, t0, created.CreationTime())
	assert.Equal(t, t0, *created.StartTime())
	assert.Equal(t, "Ana", created.Operator().Name())
	uow.AssertExpectations(t)
}

func TestDecideNewOrderCommandHandler_OrderCreatedElsewhere(t *testing.T) {
	ctx := t.Context()
	sessions := openSession(t, services.NewOrderDetected)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, ord1).Return(parkedOrder(order.HoldPending), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionPending, "")
	h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.Equal(t, 1, sessions.Open())
}

func TestDecideNewOrderCommandHandler_UnknownOperator(t *testing.T) {
	ctx := t.Context()
	sessions := openSession(t, services.NewOrderDetected)

	orders := new(MockOrderRepository)
	operators := new(MockOperatorRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, ord1).Return(nil, errs.NewObjectNotFoundError("order", ord1)).Once(),
		uow.On("OperatorRepository").Return(operators).Once(),
		operators.On("Get", ctx, "ZZ").Return(operator.Operator{}, errs.NewObjectNotFoundError("operator", "ZZ")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionAssign, "ZZ")
	h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestDecideNewOrderCommandHandler_WithoutSession(t *testing.T) {
	ctx := t.Context()
	sessions := openSession(t, services.AwaitingAssignment)
	factory := new(MockUoWFactory)

	cmd, _ := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionPending, "")
	h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoPendingScan)
	factory.AssertNotCalled(t, "Create")
}

func TestDecideNewOrderCommandHandler_BeginError(t *testing.T) {
	ctx := t.Context()
	sessions := openSession(t, services.NewOrderDetected)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	cmd, _ := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionPending, "")
	h := commands.NewDecideNewOrderCommandHandler(factory, sessions, fixedClock(t0))
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, 1, sessions.Open())
}

func TestNewDecideNewOrderCommand(t *testing.T) {
	_, err := commands.NewDecideNewOrderCommand("tablet-1", commands.ActionAssign, "  ")
	require.ErrorIs(t, err, commands.ErrOperatorIsRequired)
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = commands.NewDecideNewOrderCommand("tablet-1", "later", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewDecideNewOrderCommand("", commands.ActionPending, "")
	require.ErrorIs(t, err, commands.ErrClientIDIsRequired)
}
