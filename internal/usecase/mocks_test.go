package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/directorcrm/instagram-crm/internal/entity"
	"github.com/directorcrm/instagram-crm/internal/infra/integration/instagram"
	"github.com/directorcrm/instagram-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByIGID(ctx context.Context, igID string) (*entity.Lead, error) {
	args := m.Called(ctx, igID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, statusFilter string) ([]*entity.Lead, error) {
	args := m.Called(ctx, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateProfile(ctx context.Context, igID, username, fullName string) error {
	args := m.Called(ctx, igID, username, fullName)
	return args.Error(0)
}

// MockMessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Insert(ctx context.Context, msg *entity.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) ExistsByInstagramID(ctx context.Context, leadID, instagramMessageID string) (bool, error) {
	args := m.Called(ctx, leadID, instagramMessageID)
	return args.Bool(0), args.Error(1)
}

// MockInstagramAPI
type MockInstagramAPI struct {
	mock.Mock
}

func (m *MockInstagramAPI) GetProfile(igID string) (*instagram.Profile, error) {
	args := m.Called(igID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*instagram.Profile), args.Error(1)
}

func (m *MockInstagramAPI) SendMessage(recipientID, text string) (string, error) {
	args := m.Called(recipientID, text)
	return args.String(0), args.Error(1)
}

func (m *MockInstagramAPI) FetchConversation(igID string) ([]instagram.RemoteMessage, error) {
	args := m.Called(igID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]instagram.RemoteMessage), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, payload queue.CRMEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// fakeTxManager executa o bloco direto, sem banco.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
