package user

type (
	ID   int64
	User struct {
		ID        ID
		Nome      string
		Sobrenome string
		Email     string
		Telefone  string
		SenhaHash string
	}
	Users []*User

	// Registration is a validated signup submission. Senha is plaintext and
	// must never leave the service layer.
	Registration struct {
		Nome      string
		Sobrenome string
		Email     string
		Telefone  string
		Senha     string
	}
)

// NextID returns max(id)+1, or 1 for an empty set.
func (us Users) NextID() ID {
	var maxID ID
	for _, u := range us {
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	return maxID + 1
}

func (us Users) FindByID(id ID) *User {
	for _, u := range us {
		if u.ID == id {
			return u
		}
	}

	return nil
}

// FindByEmail matches the email exactly as stored.
func (us Users) FindByEmail(email string) *User {
	for _, u := range us {
		if u.Email == email {
			return u
		}
	}

	return nil
}
