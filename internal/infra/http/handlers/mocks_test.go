package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/directorcrm/instagram-crm/internal/entity"
	"github.com/directorcrm/instagram-crm/internal/usecase"
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

// MockTemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, tpl *entity.MessageTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*entity.MessageTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MessageTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, tpl *entity.MessageTemplate) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIngestor
type MockIngestor struct {
	mock.Mock
}

func (m *MockIngestor) Execute(ctx context.Context, evt usecase.InboundEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Execute(ctx context.Context, input usecase.SendMessageInput) (*usecase.SendMessageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SendMessageOutput), args.Error(1)
}

// MockSyncer
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Execute(ctx context.Context, leadID, igID string) int {
	args := m.Called(ctx, leadID, igID)
	return args.Int(0)
}
