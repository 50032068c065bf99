package model

import "time"

// LogStatusEntity registra uma mudança de status de um projeto.
// É um registro de auditoria: somente inserido, nunca alterado ou
// removido individualmente. Quando o projeto é excluído, o histórico
// inteiro é removido na mesma transação.
type LogStatusEntity struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ProjetoID      string    `gorm:"type:uuid;not null;index" json:"projeto_id"`
	StatusAnterior Status    `gorm:"not null;size:30" json:"status_anterior"`
	StatusNovo     Status    `gorm:"not null;size:30" json:"status_novo"`
	UsuarioID      string    `gorm:"type:uuid;not null" json:"usuario_id"`
	DataHora       time.Time `gorm:"autoCreateTime;index" json:"data_hora"`

	Usuario *UserEntity `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// TableName define o nome da tabela
func (LogStatusEntity) TableName() string {
	return "logs_de_status"
}
