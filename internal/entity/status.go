package entity

type LeadStatus string

const (
	StatusNew         LeadStatus = "NEW"
	StatusContacted   LeadStatus = "CONTACTED"
	StatusQualified   LeadStatus = "QUALIFIED"
	StatusProposal    LeadStatus = "PROPOSAL"
	StatusNegotiation LeadStatus = "NEGOTIATION"
	StatusClosedWon   LeadStatus = "CLOSED_WON"
	StatusClosedLost  LeadStatus = "CLOSED_LOST"
	StatusOnHold      LeadStatus = "ON_HOLD"
	StatusFollowUp    LeadStatus = "FOLLOW_UP"
)

// StatusInfo é o formato que o dashboard consome em GET /lead-statuses.
type StatusInfo struct {
	Value LeadStatus `json:"value"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

// AllStatuses mantém a ordem do funil, do primeiro contato ao fechamento.
var AllStatuses = []StatusInfo{
	{StatusNew, "Novo", "#3b82f6"},
	{StatusContacted, "Contactado", "#8b5cf6"},
	{StatusQualified, "Qualificado", "#06b6d4"},
	{StatusProposal, "Proposta", "#f59e0b"},
	{StatusNegotiation, "Negociação", "#f97316"},
	{StatusClosedWon, "Fechado (ganho)", "#22c55e"},
	{StatusClosedLost, "Fechado (perdido)", "#ef4444"},
	{StatusOnHold, "Em espera", "#64748b"},
	{StatusFollowUp, "Follow-up", "#eab308"},
}

func (s LeadStatus) Valid() bool {
	for _, info := range AllStatuses {
		if info.Value == s {
			return true
		}
	}
	return false
}
