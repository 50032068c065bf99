package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList é uma lista de strings serializada como JSON em uma
// coluna de texto (usada para as tags de um projeto)
type StringList []string

// Value implementa driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan implementa sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	}
	return json.Unmarshal(bytes, l)
}

// ProjetoEntity é a representação de banco de dados de um projeto de vídeo.
// O histórico de mudanças de status (logs_de_status) pertence ao projeto e
// é removido junto com ele; Responsavel e TipoVideo são referências
// compartilhadas, nunca removidas em cascata.
type ProjetoEntity struct {
	ID                  string     `gorm:"primaryKey;type:uuid" json:"id"`
	Titulo              string     `gorm:"not null;size:200" json:"titulo"`
	Descricao           string     `gorm:"type:text" json:"descricao"`
	Cliente             string     `gorm:"size:160" json:"cliente"`
	ResponsavelID       string     `gorm:"type:uuid;not null;index" json:"responsavel_id"`
	TipoVideoID         *string    `gorm:"type:uuid;index" json:"tipo_video_id"`
	Tags                StringList `gorm:"type:text" json:"tags"`
	Prioridade          string     `gorm:"not null;default:Média;size:10" json:"prioridade"`
	Status              Status     `gorm:"not null;default:Briefing;size:30;index" json:"status"`
	DataCriacao         time.Time  `gorm:"autoCreateTime;index" json:"data_criacao"`
	DataPrevistaEntrega *time.Time `json:"data_prevista_entrega"`
	DataAprovacao       *time.Time `json:"data_aprovacao"`
	LinkVideo           string     `gorm:"size:500" json:"link_video"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Responsavel *UserEntity      `gorm:"foreignKey:ResponsavelID" json:"responsavel,omitempty"`
	TipoVideo   *TipoVideoEntity `gorm:"foreignKey:TipoVideoID" json:"tipo_video,omitempty"`
}

// TableName define o nome da tabela
func (ProjetoEntity) TableName() string {
	return "projetos"
}

// FiltrosProjeto descreve os filtros opcionais da listagem de projetos.
// Campos vazios não são aplicados; todos os presentes combinam com AND.
type FiltrosProjeto struct {
	Status        string `form:"status"`
	ResponsavelID string `form:"responsavel_id"`
	TipoVideoID   string `form:"tipo_video_id"`
	Prioridade    string `form:"prioridade"`
	Search        string `form:"search"`
}

// Vazio indica que nenhum filtro foi informado
func (f FiltrosProjeto) Vazio() bool {
	return f.Status == "" && f.ResponsavelID == "" && f.TipoVideoID == "" &&
		f.Prioridade == "" && f.Search == ""
}
