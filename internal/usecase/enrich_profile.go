package usecase

import (
	"context"
	"log"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

// ProfileEnricher preenche username/full_name de um lead a partir do
// Graph API. Só faz a chamada remota quando o username ainda está vazio.
type ProfileEnricher struct {
	Leads     entity.LeadRepositoryInterface
	Instagram InstagramAPI
}

func NewProfileEnricher(leads entity.LeadRepositoryInterface, ig InstagramAPI) *ProfileEnricher {
	return &ProfileEnricher{Leads: leads, Instagram: ig}
}

// EnsureProfile é efeito colateral puro: quem chama não consome retorno.
// Perfil indisponível (conta privada/desativada) não é erro — fica para a
// próxima mensagem do mesmo lead tentar de novo.
func (e *ProfileEnricher) EnsureProfile(ctx context.Context, igID string) error {
	lead, err := e.Leads.FindByIGID(ctx, igID)
	if err != nil {
		return err
	}

	if lead.Username != nil && *lead.Username != "" {
		return nil
	}

	profile, err := e.Instagram.GetProfile(igID)
	if err != nil {
		log.Printf("⚠️ Falha ao buscar perfil de %s: %v", igID, err)
		return nil
	}

	if profile.Username == "" {
		return nil
	}

	if err := e.Leads.UpdateProfile(ctx, igID, profile.Username, profile.Name); err != nil {
		return err
	}

	log.Printf("✅ Perfil enriquecido: %s -> @%s", igID, profile.Username)
	return nil
}
