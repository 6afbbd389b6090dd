package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// MockRequestRepository is an in-memory RequestRepository with error
// injection for tests.
type MockRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.TripRequest

	CreateErr         error
	GetByIDErr        error
	UpdateErr         error
	CreateCalls       int32
	UpdateIfStatCalls int32
}

func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{requests: make(map[string]*domain.TripRequest)}
}

// Seed inserts a request directly, bypassing error injection.
func (m *MockRequestRepository) Seed(req *domain.TripRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *req
	m.requests[req.ID] = &copied
}

// Stored returns the stored copy of a request, or nil.
func (m *MockRequestRepository) Stored(id string) *domain.TripRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if req, ok := m.requests[id]; ok {
		copied := *req
		return &copied
	}
	return nil
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.TripRequest) error {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *req
	m.requests[req.ID] = &copied
	return nil
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.TripRequest, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TripRequest
	for _, req := range m.requests {
		if req.RequesterID == requesterID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockRequestRepository) ListByApprover(ctx context.Context, approverID string, status domain.RequestStatus) ([]*domain.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TripRequest
	for _, req := range m.requests {
		if req.ApproverID != approverID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		copied := *req
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockRequestRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.TripRequest
	for _, req := range m.requests {
		if req.AssignedDriverID == driverID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockRequestRepository) GetCommittedWindows(ctx context.Context, driverID string) ([]domain.TimeWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var windows []domain.TimeWindow
	for _, req := range m.requests {
		if req.AssignedDriverID != driverID {
			continue
		}
		if req.Status == domain.RequestStatusAssigned || req.Status == domain.RequestStatusInProgress {
			windows = append(windows, req.Window)
		}
	}
	return windows, nil
}

func (m *MockRequestRepository) Update(ctx context.Context, req *domain.TripRequest) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *req
	m.requests[req.ID] = &copied
	return nil
}

func (m *MockRequestRepository) UpdateIfStatus(ctx context.Context, req *domain.TripRequest, expected domain.RequestStatus) error {
	atomic.AddInt32(&m.UpdateIfStatCalls, 1)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.requests[req.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != expected {
		return repository.ErrStatusConflict
	}
	copied := *req
	m.requests[req.ID] = &copied
	return nil
}

// MockVehicleRepository is an in-memory VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	CreateErr error
	ListErr   error
}

func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{vehicles: make(map[string]*domain.Vehicle)}
}

func (m *MockVehicleRepository) Seed(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *vehicle
	m.vehicles[vehicle.ID] = &copied
}

func (m *MockVehicleRepository) Stored(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vehicles[id]; ok {
		copied := *v
		return &copied
	}
	return nil
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *vehicle
	m.vehicles[vehicle.ID] = &copied
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Vehicle
	for _, v := range m.vehicles {
		copied := *v
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockVehicleRepository) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.Status == status {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Status = status
	return nil
}

func (m *MockVehicleRepository) UpdateStatusIf(ctx context.Context, id string, expected, next domain.VehicleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v.Status != expected {
		return repository.ErrStatusConflict
	}
	v.Status = next
	return nil
}

func (m *MockVehicleRepository) UpdateTelemetry(ctx context.Context, id string, mileage, fuel *float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if mileage != nil {
		v.Mileage = *mileage
	}
	if fuel != nil {
		v.FuelLevel = *fuel
	}
	return nil
}

// MockEmployeeRepository is an in-memory EmployeeRepository.
type MockEmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*domain.Employee

	ListByRoleErr error
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{employees: make(map[string]*domain.Employee)}
}

func (m *MockEmployeeRepository) Seed(employee *domain.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *employee
	m.employees[employee.ID] = &copied
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *employee
	m.employees[employee.ID] = &copied
	return nil
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.employees {
		if e.Email == email {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockEmployeeRepository) GetAll(ctx context.Context) ([]*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Employee
	for _, e := range m.employees {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockEmployeeRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.Employee, error) {
	if m.ListByRoleErr != nil {
		return nil, m.ListByRoleErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Employee
	for _, e := range m.employees {
		if e.Role == role && e.Active {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockEmployeeRepository) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return nil, nil
}

// MockLockStore is an in-memory lock store. Locks never expire; a test
// that needs a held lock released must release it.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireErr error
}

func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) acquire(key string) (bool, error) {
	if m.AcquireErr != nil {
		return false, m.AcquireErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

// Held reports whether a lock key is currently held.
func (m *MockLockStore) Held(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[key]
}

func (m *MockLockStore) AcquireRequestLock(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	return m.acquire("request:" + requestID)
}

func (m *MockLockStore) ReleaseRequestLock(ctx context.Context, requestID string) error {
	return m.release("request:" + requestID)
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return m.acquire("driver:" + driverID)
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	return m.release("driver:" + driverID)
}

// MockTxFactory issues units of work over the shared mock stores. Writes
// apply immediately; Commit and Rollback only count calls. The mock
// stores' conditional updates carry the atomicity the tests rely on.
type MockTxFactory struct {
	Requests *MockRequestRepository
	Vehicles *MockVehicleRepository

	BeginErr      error
	CommitCalls   int32
	RollbackCalls int32
}

func NewMockTxFactory(requests *MockRequestRepository, vehicles *MockVehicleRepository) *MockTxFactory {
	return &MockTxFactory{Requests: requests, Vehicles: vehicles}
}

func (f *MockTxFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	return &mockUnitOfWork{factory: f}, nil
}

type mockUnitOfWork struct {
	factory *MockTxFactory
}

func (u *mockUnitOfWork) Requests() repository.RequestRepository {
	return u.factory.Requests
}

func (u *mockUnitOfWork) Vehicles() repository.VehicleRepository {
	return u.factory.Vehicles
}

func (u *mockUnitOfWork) Commit() error {
	atomic.AddInt32(&u.factory.CommitCalls, 1)
	return nil
}

func (u *mockUnitOfWork) Rollback() error {
	atomic.AddInt32(&u.factory.RollbackCalls, 1)
	return nil
}

// fixedPicker always returns the same index (clamped to range).
type fixedPicker struct {
	index int
}

func (p fixedPicker) Pick(n int) int {
	if p.index >= n {
		return n - 1
	}
	return p.index
}
