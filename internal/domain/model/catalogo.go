package model

import "time"

// TipoVideoEntity é um tipo de vídeo do catálogo (Institucional,
// Comercial, Tutorial...). Identidade imutável, criada via seed ou
// por administradores.
type TipoVideoEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Nome      string    `gorm:"uniqueIndex;not null;size:80" json:"nome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName define o nome da tabela
func (TipoVideoEntity) TableName() string {
	return "tipos_de_video"
}

// TagEntity é uma etiqueta livre associável a projetos
type TagEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Nome      string    `gorm:"uniqueIndex;not null;size:80" json:"nome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName define o nome da tabela
func (TagEntity) TableName() string {
	return "tags"
}
