package model

// Status representa a etapa do pipeline de produção em que um projeto está.
// Os valores são armazenados exatamente como exibidos na interface.
type Status string

const (
	StatusBriefing            Status = "Briefing"
	StatusRoteiro             Status = "Roteiro"
	StatusCaptacao            Status = "Captação"
	StatusEdicao              Status = "Edição"
	StatusEntrega             Status = "Entrega"
	StatusRevisao             Status = "Revisão"
	StatusAguardandoAprovacao Status = "Aguardando Aprovação"
	StatusAprovado            Status = "Aprovado"
	StatusEmPausa             Status = "Em Pausa"
	StatusCancelado           Status = "Cancelado"
)

// TodosStatus lista todas as etapas na ordem pretendida do pipeline,
// seguidas dos estados laterais.
var TodosStatus = []Status{
	StatusBriefing,
	StatusRoteiro,
	StatusCaptacao,
	StatusEdicao,
	StatusEntrega,
	StatusRevisao,
	StatusAguardandoAprovacao,
	StatusAprovado,
	StatusEmPausa,
	StatusCancelado,
}

// Valido verifica se o valor pertence à enumeração de status
func (s Status) Valido() bool {
	for _, st := range TodosStatus {
		if s == st {
			return true
		}
	}
	return false
}

// Terminal indica se o status não possui transições de saída.
// Projetos aprovados ou cancelados continuam editáveis nos metadados,
// mas não avançam mais no pipeline.
func (s Status) Terminal() bool {
	return s == StatusAprovado || s == StatusCancelado
}

// PodeTransicionar valida a transição de status atual para o destino.
// O pipeline é permissivo quanto a saltos para frente (Briefing pode ir
// direto a Aprovado); Em Pausa e Cancelado servem de válvula de escape
// a partir de qualquer estado não terminal.
func (s Status) PodeTransicionar(destino Status) bool {
	if !destino.Valido() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if destino == s {
		return false
	}
	return true
}

// Prioridades reconhecidas para um projeto.
const (
	PrioridadeAlta  = "Alta"
	PrioridadeMedia = "Média"
	PrioridadeBaixa = "Baixa"
)

// PrioridadeValida verifica se a prioridade pertence à enumeração
func PrioridadeValida(p string) bool {
	switch p {
	case PrioridadeAlta, PrioridadeMedia, PrioridadeBaixa:
		return true
	}
	return false
}
