package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

// SyncHistoryUseCase reconcilia o transcript remoto com o log local.
// Dedupe por (lead_id, instagram_message_id); direção inferida comparando
// o remetente remoto com o ig_id do lead. Best-effort: falha total do
// fetch vira zero, falha de uma mensagem pula só ela.
type SyncHistoryUseCase struct {
	Messages  entity.MessageRepositoryInterface
	Instagram InstagramAPI
}

func NewSyncHistoryUseCase(messages entity.MessageRepositoryInterface, ig InstagramAPI) *SyncHistoryUseCase {
	return &SyncHistoryUseCase{Messages: messages, Instagram: ig}
}

// Execute retorna quantas mensagens novas foram inseridas. Rodar duas
// vezes seguidas sem atividade remota nova insere zero na segunda.
func (uc *SyncHistoryUseCase) Execute(ctx context.Context, leadID, igID string) int {
	remote, err := uc.Instagram.FetchConversation(igID)
	if err != nil {
		log.Printf("⚠️ Sync: falha ao buscar transcript de %s: %v", igID, err)
		return 0
	}

	synced := 0
	for _, rm := range remote {
		if rm.ID == "" {
			continue
		}

		exists, err := uc.Messages.ExistsByInstagramID(ctx, leadID, rm.ID)
		if err != nil {
			log.Printf("⚠️ Sync: falha ao checar mensagem %s: %v", rm.ID, err)
			continue
		}
		if exists {
			continue
		}

		direction := entity.DirectionOutbound
		if rm.FromID == igID {
			direction = entity.DirectionInbound
		}

		msg := entity.NewMessage(leadID, rm.Text, direction, rm.CreatedTime)
		remoteID := rm.ID
		msg.InstagramMessageID = &remoteID

		if err := uc.Messages.Insert(ctx, msg); err != nil {
			if errors.Is(err, entity.ErrDuplicateMessage) {
				continue
			}
			// Erro transitório nessa mensagem: loga e segue para a próxima.
			log.Printf("⚠️ Sync: falha ao inserir mensagem %s: %v", rm.ID, err)
			continue
		}
		synced++
	}

	if synced > 0 {
		log.Printf("🔄 Sync: %d mensagens novas para o lead %s", synced, leadID)
	}
	return synced
}
