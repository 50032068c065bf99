// Package policy concentra as regras de autorização do sistema.
// As decisões são puras: nenhum acesso a banco, nenhum efeito colateral.
package policy

import "github.com/produflow/produflow-api/internal/domain/model"

// PodeCriarProjeto: qualquer usuário autenticado e ativo pode criar projetos
func PodeCriarProjeto(usuario *model.User) bool {
	return usuario != nil && usuario.Ativo
}

// PodeMutarProjeto decide se o usuário pode editar metadados, transicionar
// status, alterar o link do vídeo ou excluir o projeto: administradores e
// gestores sempre podem; membros apenas quando são o responsável.
func PodeMutarProjeto(usuario *model.User, projeto *model.ProjetoEntity) bool {
	if usuario == nil || projeto == nil || !usuario.Ativo {
		return false
	}
	if usuario.Papel == model.PapelAdmin || usuario.Papel == model.PapelGestor {
		return true
	}
	return usuario.ID == projeto.ResponsavelID
}

// PodeGerirCatalogo decide quem pode criar tipos de vídeo e tags
func PodeGerirCatalogo(usuario *model.User) bool {
	if usuario == nil || !usuario.Ativo {
		return false
	}
	return usuario.Papel == model.PapelAdmin || usuario.Papel == model.PapelGestor
}

// PodeGerirUsuarios decide quem pode provisionar e desativar usuários
func PodeGerirUsuarios(usuario *model.User) bool {
	return usuario != nil && usuario.Ativo && usuario.Papel == model.PapelAdmin
}
