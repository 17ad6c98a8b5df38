package user

type (
	User struct {
		ID        int64
		Nome      string
		Sobrenome string
		Email     string
		Telefone  string
		Senha     string
	}
)
