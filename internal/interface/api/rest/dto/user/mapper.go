package user

import (
	"golden-movie-studio/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:        int64(uDomain.ID),
		Nome:      uDomain.Nome,
		Sobrenome: uDomain.Sobrenome,
		Email:     uDomain.Email,
		Telefone:  uDomain.Telefone,
	}

	return u
}

// ToDomainRegistration expects a validated request; absent optional fields
// become empty strings.
func ToDomainRegistration(r Request) user.Registration {
	return user.Registration{
		Nome:      deref(r.Nome),
		Sobrenome: deref(r.Sobrenome),
		Email:     deref(r.Email),
		Telefone:  deref(r.Telefone),
		Senha:     deref(r.Senha),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
