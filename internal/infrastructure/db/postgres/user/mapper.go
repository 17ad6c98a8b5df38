package user

import (
	domain "golden-movie-studio/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:        domain.ID(model.ID),
		Nome:      model.Nome,
		Sobrenome: model.Sobrenome,
		Email:     model.Email,
		Telefone:  model.Telefone,
		SenhaHash: model.Senha,
	}

	return u
}
