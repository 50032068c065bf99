package model

// Chaves sentinela para agrupamentos sem referência resolvida.
const (
	SemResponsavel = "Sem responsável"
	SemTipo        = "Sem tipo"
	SemCliente     = "Sem cliente"
)

// Metricas é o retrato agregado dos projetos, recalculado a cada chamada
// a partir do estado corrente do banco. Nenhum valor é cacheado.
//
// TotalProjetos segue a definição do painel: exclui os aprovados, de modo
// que TaxaConclusao = Aprovados / (Total + Aprovados). MembrosAtivos também
// segue o painel: responsáveis distintos com projetos, não usuários ativos.
type Metricas struct {
	TotalProjetos          int64             `json:"totalProjetos"`
	ProjetosPorStatus      map[Status]int64  `json:"projetosPorStatus"`
	ProjetosPorResponsavel map[string]int64  `json:"projetosPorResponsavel"`
	ProjetosPorTipo        map[string]int64  `json:"projetosPorTipo"`
	VideosPorCliente       map[string]int64  `json:"videosPorCliente"`
	ProjetosAprovados      int64             `json:"projetosAprovados"`
	ProjetosAtivos         int64             `json:"projetosAtivos"`
	ProjetosAtrasados      int64             `json:"projetosAtrasados"`
	TaxaConclusao          int               `json:"taxaConclusao"`
	MembrosAtivos          int               `json:"membrosAtivos"`
}
