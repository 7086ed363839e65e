package commands_test

import (
	"context"
	"sync"
	"time"

	"scantrack/internal/core/application/snapshot"
	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/core/domain/model/kernel"
	"scantrack/internal/core/domain/model/operator"
	"scantrack/internal/core/domain/model/order"
	"scantrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Upsert(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOperatorRepository struct{ mock.Mock }

func (m *MockOperatorRepository) Add(ctx context.Context, op operator.Operator) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperatorRepository) Update(ctx context.Context, op operator.Operator) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperatorRepository) Get(ctx context.Context, id string) (operator.Operator, error) {
	args := m.Called(ctx, id)
	op, _ := args.Get(0).(operator.Operator)
	return op, args.Error(1)
}

func (m *MockOperatorRepository) ListAll(ctx context.Context) ([]operator.Operator, error) {
	args := m.Called(ctx)
	ops, _ := args.Get(0).([]operator.Operator)
	return ops, args.Error(1)
}

func (m *MockOperatorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUoW satisfies OrderUoW, OperatorUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OperatorRepository() ports.OperatorRepository {
	args := m.Called()
	return args.Get(0).(ports.OperatorRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOperatorUoWFactory struct{ mock.Mock }

func (m *MockOperatorUoWFactory) Create() commands.OperatorUoW {
	args := m.Called()
	return args.Get(0).(commands.OperatorUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockExtractor struct{ mock.Mock }

func (m *MockExtractor) ExtractOrderID(ctx context.Context, image []byte, mimeType string) (string, error) {
	args := m.Called(ctx, image, mimeType)
	return args.String(0), args.Error(1)
}

// fakeSnapshots serves a fixed snapshot.
type fakeSnapshots struct {
	mu   sync.Mutex
	snap snapshot.Snapshot
}

func (f *fakeSnapshots) Current() snapshot.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

var (
	t0   = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	ana  = operator.MustNewOperator("A1", "Ana")
	ord1 = kernel.MustParseOrderID("ORD-1")
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func parkedOrder(hold order.Hold) *order.Order {
	o, err := order.NewOrder(ord1, t0, hold)
	if err != nil {
		panic(err)
	}
	return o
}

func startedOrder() *order.Order {
	o, err := order.NewStartedOrder(ord1, ana, t0)
	if err != nil {
		panic(err)
	}
	return o
}

func completedOrder() *order.Order {
	o := startedOrder()
	if err := o.Complete(t0.Add(10 * time.Minute)); err != nil {
		panic(err)
	}
	return o
}
