package user

// User is the on-disk shape of a record; key order matches the stored file.
type (
	User struct {
		ID        int64  `json:"id"`
		Nome      string `json:"nome"`
		Sobrenome string `json:"sobrenome"`
		Email     string `json:"email"`
		Telefone  string `json:"telefone"`
		Senha     string `json:"senha"`
	}
	Users []*User
)
