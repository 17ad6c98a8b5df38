package user

import (
	"encoding/json"
	"errors"
	"slices"
)

var errNotObject = errors.New("request body must be a JSON object")

// Request fields are pointers so a missing field can be told apart from an
// empty one.
type Request struct {
	Nome      *string `json:"nome" form:"nome"`
	Sobrenome *string `json:"sobrenome" form:"sobrenome"`
	Email     *string `json:"email" form:"email"`
	Telefone  *string `json:"telefone" form:"telefone"`
	Senha     *string `json:"senha" form:"senha"`

	// NotString holds keys whose JSON value was present but not a string.
	NotString map[string]bool `json:"-" form:"-"`
	// Unknown holds keys outside the schema, sorted.
	Unknown []string `json:"-" form:"-"`
}

// UnmarshalJSON decodes every key on its own so one mistyped value does not
// hide problems in the other fields.
func (r *Request) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errNotObject
	}

	*r = Request{}
	targets := map[string]**string{
		"nome":      &r.Nome,
		"sobrenome": &r.Sobrenome,
		"email":     &r.Email,
		"telefone":  &r.Telefone,
		"senha":     &r.Senha,
	}

	for k, v := range raw {
		dst, ok := targets[k]
		if !ok {
			r.Unknown = append(r.Unknown, k)
			continue
		}

		var s string
		if len(v) == 0 || v[0] != '"' || json.Unmarshal(v, &s) != nil {
			if r.NotString == nil {
				r.NotString = make(map[string]bool)
			}
			r.NotString[k] = true
			continue
		}
		*dst = &s
	}
	slices.Sort(r.Unknown)

	return nil
}
