package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/service"
	"github.com/phrazzld/dailyplan-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// memPlanStore is an in-memory store.PlanStore.
type memPlanStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	err   error // returned by every call when set
}

func newMemPlanStore() *memPlanStore {
	return &memPlanStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

var _ store.PlanStore = (*memPlanStore)(nil)

func (m *memPlanStore) WithTx(*sql.Tx) store.PlanStore { return m }

func (m *memPlanStore) SavePlan(_ context.Context, userID uuid.UUID, date string, tasks []*domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for id, t := range m.tasks {
		if t.UserID == userID && t.PlanDate == date {
			delete(m.tasks, id)
		}
	}
	for _, t := range tasks {
		c := *t
		m.tasks[t.ID] = &c
	}
	return nil
}

func (m *memPlanStore) AddTasks(_ context.Context, tasks []*domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, t := range tasks {
		c := *t
		m.tasks[t.ID] = &c
	}
	return nil
}

func (m *memPlanStore) plansLocked(userID uuid.UUID, from, to string) []*domain.Plan {
	byDate := map[string]*domain.Plan{}
	for _, t := range m.tasks {
		if t.UserID != userID || (from != "" && t.PlanDate < from) || (to != "" && t.PlanDate > to) {
			continue
		}
		p, ok := byDate[t.PlanDate]
		if !ok {
			p = &domain.Plan{Date: t.PlanDate}
			byDate[t.PlanDate] = p
		}
		c := *t
		p.Tasks = append(p.Tasks, &c)
	}
	plans := make([]*domain.Plan, 0, len(byDate))
	for _, p := range byDate {
		sort.Slice(p.Tasks, func(i, j int) bool { return p.Tasks[i].Position < p.Tasks[j].Position })
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Date < plans[j].Date })
	return plans
}

func (m *memPlanStore) GetPlan(_ context.Context, userID uuid.UUID, date string) (*domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	plans := m.plansLocked(userID, date, date)
	if len(plans) == 0 {
		return nil, store.ErrPlanNotFound
	}
	return plans[0], nil
}

func (m *memPlanStore) HasPlan(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	_, err := m.GetPlan(ctx, userID, date)
	if err == store.ErrPlanNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memPlanStore) ListPlans(_ context.Context, userID uuid.UUID, from, to string) ([]*domain.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.plansLocked(userID, from, to), nil
}

func (m *memPlanStore) GetTask(_ context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

func (m *memPlanStore) UpdateTask(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	c := *task
	m.tasks[task.ID] = &c
	return nil
}

func (m *memPlanStore) DeleteTask(_ context.Context, userID, taskID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

func (m *memPlanStore) DeletePlan(_ context.Context, userID uuid.UUID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, t := range m.tasks {
		if t.UserID == userID && t.PlanDate == date {
			delete(m.tasks, id)
			n++
		}
	}
	if n == 0 {
		return store.ErrPlanNotFound
	}
	return nil
}

// directTx runs fn against s without a real transaction.
func directTx(s store.PlanStore) service.PlanTxRunner {
	return func(ctx context.Context, fn func(ctx context.Context, plans store.PlanStore) error) error {
		return fn(ctx, s)
	}
}

// mockGenerator is a testify mock of generation.Generator.
type mockGenerator struct {
	mock.Mock
}

func (g *mockGenerator) HasCredential() bool {
	return g.Called().Bool(0)
}

func (g *mockGenerator) ConvertParagraph(ctx context.Context, paragraph string) ([]string, error) {
	args := g.Called(ctx, paragraph)
	titles, _ := args.Get(0).([]string)
	return titles, args.Error(1)
}

// memUserStore is an in-memory store.UserStore.
type memUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*domain.User)}
}

func (m *memUserStore) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return store.ErrEmailExists
	}
	c := *user
	m.byEmail[user.Email] = &c
	return nil
}

func (m *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUserStore) WithTx(*sql.Tx) store.UserStore { return m }
