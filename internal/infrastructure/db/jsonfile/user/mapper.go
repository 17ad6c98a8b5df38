package user

import (
	domain "golden-movie-studio/internal/domain/user"
)

func fromFileModel(model *User) *domain.User {
	return &domain.User{
		ID:        domain.ID(model.ID),
		Nome:      model.Nome,
		Sobrenome: model.Sobrenome,
		Email:     model.Email,
		Telefone:  model.Telefone,
		SenhaHash: model.Senha,
	}
}

// fromFileModels drops null entries left by manual edits of the file.
func fromFileModels(models Users) domain.Users {
	us := make(domain.Users, 0, len(models))
	for _, u := range models {
		if u == nil {
			continue
		}
		us = append(us, fromFileModel(u))
	}

	return us
}

func toFileModel(u domain.User) *User {
	return &User{
		ID:        int64(u.ID),
		Nome:      u.Nome,
		Sobrenome: u.Sobrenome,
		Email:     u.Email,
		Telefone:  u.Telefone,
		Senha:     u.SenhaHash,
	}
}

func toFileModels(us domain.Users) Users {
	models := make(Users, len(us))
	for idx, u := range us {
		models[idx] = toFileModel(*u)
	}

	return models
}
