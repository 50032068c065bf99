package model

import "time"

// Papéis reconhecidos pelo sistema.
const (
	PapelAdmin  = "admin"
	PapelGestor = "gestor"
	PapelMembro = "membro"
)

// PapelValido verifica se o papel informado é um dos papéis reconhecidos
func PapelValido(papel string) bool {
	switch papel {
	case PapelAdmin, PapelGestor, PapelMembro:
		return true
	}
	return false
}

// User representa um usuário do sistema (projeção pública, sem credenciais)
type User struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Papel string `json:"papel"`
	Ativo bool   `json:"ativo"`
}

// UserEntity é a representação de banco de dados de um usuário.
// Usuários nunca são removidos fisicamente; a desativação acontece
// pelo campo Ativo.
type UserEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Nome      string    `gorm:"not null;size:120"`
	Email     string    `gorm:"uniqueIndex;not null;size:160"`
	Senha     string    `gorm:"not null"`
	Papel     string    `gorm:"not null;default:membro;size:20;index"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}

// Public converte a entidade na projeção exposta pela API
func (u *UserEntity) Public() *User {
	return &User{
		ID:    u.ID,
		Nome:  u.Nome,
		Email: u.Email,
		Papel: u.Papel,
		Ativo: u.Ativo,
	}
}
