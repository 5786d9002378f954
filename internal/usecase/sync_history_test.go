package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/directorcrm/instagram-crm/internal/entity"
	"github.com/directorcrm/instagram-crm/internal/infra/integration/instagram"
)

func transcript() []instagram.RemoteMessage {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []instagram.RemoteMessage{
		{ID: "m1", Text: "oi", FromID: "u1", CreatedTime: base},
		{ID: "m2", Text: "olá! como posso ajudar?", FromID: "operator-id", CreatedTime: base.Add(time.Minute)},
		{ID: "m3", Text: "quero saber o preço", FromID: "u1", CreatedTime: base.Add(2 * time.Minute)},
	}
}

func TestSyncHistoryInsertsOnlyMissing(t *testing.T) {
	ctx := context.Background()

	mockMessages := new(MockMessageRepository)
	mockIG := new(MockInstagramAPI)

	mockIG.On("FetchConversation", "u1").Return(transcript(), nil)
	// m1 já está no banco, m2 e m3 não.
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", "m1").Return(true, nil)
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", "m2").Return(false, nil)
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", "m3").Return(false, nil)
	mockMessages.On("Insert", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.InstagramMessageID != nil && *m.InstagramMessageID == "m2" &&
			m.Direction == entity.DirectionOutbound
	})).Return(nil).Once()
	mockMessages.On("Insert", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.InstagramMessageID != nil && *m.InstagramMessageID == "m3" &&
			m.Direction == entity.DirectionInbound
	})).Return(nil).Once()

	uc := NewSyncHistoryUseCase(mockMessages, mockIG)

	synced := uc.Execute(ctx, "lead-1", "u1")

	assert.Equal(t, 2, synced)
	mockMessages.AssertExpectations(t)
}

func TestSyncHistoryIdempotentSecondRun(t *testing.T) {
	ctx := context.Background()

	mockMessages := new(MockMessageRepository)
	mockIG := new(MockInstagramAPI)

	mockIG.On("FetchConversation", "u1").Return(transcript(), nil)
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", mock.Anything).Return(true, nil)

	uc := NewSyncHistoryUseCase(mockMessages, mockIG)

	synced := uc.Execute(ctx, "lead-1", "u1")

	assert.Equal(t, 0, synced)
	mockMessages.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSyncHistoryFetchFailureReturnsZero(t *testing.T) {
	mockMessages := new(MockMessageRepository)
	mockIG := new(MockInstagramAPI)

	mockIG.On("FetchConversation", "u1").Return(nil, errors.New("api down"))

	uc := NewSyncHistoryUseCase(mockMessages, mockIG)

	// Sync é best-effort: falha total do fetch não pode derrubar o request.
	synced := uc.Execute(context.Background(), "lead-1", "u1")

	assert.Equal(t, 0, synced)
	mockMessages.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSyncHistorySkipsFailedInsertAndContinues(t *testing.T) {
	mockMessages := new(MockMessageRepository)
	mockIG := new(MockInstagramAPI)

	mockIG.On("FetchConversation", "u1").Return(transcript(), nil)
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", mock.Anything).Return(false, nil)
	mockMessages.On("Insert", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return *m.InstagramMessageID == "m1"
	})).Return(errors.New("transient storage error"))
	mockMessages.On("Insert", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return *m.InstagramMessageID != "m1"
	})).Return(nil)

	uc := NewSyncHistoryUseCase(mockMessages, mockIG)

	synced := uc.Execute(context.Background(), "lead-1", "u1")

	// m1 falhou e foi pulada; m2 e m3 entraram mesmo assim.
	assert.Equal(t, 2, synced)
}

func TestSyncHistorySkipsDuplicateRace(t *testing.T) {
	mockMessages := new(MockMessageRepository)
	mockIG := new(MockInstagramAPI)

	mockIG.On("FetchConversation", "u1").Return(transcript()[:1], nil)
	// A checagem diz que não existe, mas o insert perde a corrida para
	// outro sync concorrente.
	mockMessages.On("ExistsByInstagramID", mock.Anything, "lead-1", "m1").Return(false, nil)
	mockMessages.On("Insert", mock.Anything, mock.Anything).Return(entity.ErrDuplicateMessage)

	uc := NewSyncHistoryUseCase(mockMessages, mockIG)

	synced := uc.Execute(context.Background(), "lead-1", "u1")

	assert.Equal(t, 0, synced)
}
