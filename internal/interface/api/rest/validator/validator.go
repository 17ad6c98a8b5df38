package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"golden-movie-studio/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen   = 8
	maxPasswordBytes = 72 // bcrypt input limit
	passwordSymbols  = "!@#$&*"
)

var (
	nameRe     = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s]+$`)
	telefoneRe = regexp.MustCompile(`^[0-9]*$`)
)

type field struct {
	key      string
	label    string
	required string
	empty    string
}

var (
	fieldNome      = field{"nome", "Nome", "Nome é obrigatório", "Nome não pode estar vazio"}
	fieldSobrenome = field{"sobrenome", "Sobrenome", "Sobrenome é obrigatório", "Sobrenome não pode estar vazio"}
	fieldEmail     = field{"email", "E-mail", "E-mail é obrigatório", "E-mail não pode estar vazio"}
	fieldTelefone  = field{"telefone", "Telefone", "", ""}
	fieldSenha     = field{"senha", "Senha", "Senha é obrigatória", "Senha não pode estar vazia"}
)

// FieldError is the first rule a registration broke. Message is meant for
// the end user.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func typeError(f field) *FieldError {
	return &FieldError{Field: f.key, Message: f.label + " deve ser uma string"}
}

// Normalize composes accents in the name fields so decomposed input passes
// the same rules as precomposed input.
func Normalize(r user.Request) user.Request {
	r.Nome = nfc(r.Nome)
	r.Sobrenome = nfc(r.Sobrenome)
	return r
}

func nfc(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(*s)
	return &v
}

// ValidateRegistration checks fields in declaration order and returns the
// first failure as a *FieldError. Keys outside the schema are reported only
// after every known field passed.
func ValidateRegistration(r user.Request) error {
	rules := []struct {
		f     field
		v     *string
		check func(field, *string) error
	}{
		{fieldNome, r.Nome, validateName},
		{fieldSobrenome, r.Sobrenome, validateName},
		{fieldEmail, r.Email, validateEmail},
		{fieldTelefone, r.Telefone, validateTelefone},
		{fieldSenha, r.Senha, validateSenha},
	}

	for _, rule := range rules {
		if r.NotString[rule.f.key] {
			return typeError(rule.f)
		}
		if err := rule.check(rule.f, rule.v); err != nil {
			return err
		}
	}

	if len(r.Unknown) > 0 {
		return &FieldError{Field: r.Unknown[0], Message: "Campo " + r.Unknown[0] + " não é permitido"}
	}

	return nil
}

func validateRequired(f field, v *string) error {
	if v == nil {
		return &FieldError{Field: f.key, Message: f.required}
	}
	if *v == "" {
		return &FieldError{Field: f.key, Message: f.empty}
	}
	return nil
}

func validateName(f field, v *string) error {
	if err := validateRequired(f, v); err != nil {
		return err
	}
	if !nameRe.MatchString(*v) {
		return &FieldError{
			Field:   f.key,
			Message: f.label + " deve conter apenas caracteres alfabéticos, acentuados e espaços",
		}
	}
	return nil
}

func validateEmail(f field, v *string) error {
	if err := validateRequired(f, v); err != nil {
		return err
	}
	if !IsEmail(*v) {
		return &FieldError{Field: f.key, Message: "E-mail deve ser um email válido"}
	}
	return nil
}

func validateTelefone(f field, v *string) error {
	if v != nil && !telefoneRe.MatchString(*v) {
		return &FieldError{Field: f.key, Message: "Telefone deve conter apenas números"}
	}
	return nil
}

// IsEmail accepts a single bare address whose domain has at least two labels.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	return !strings.Contains(domain, "..")
}

func validateSenha(f field, v *string) error {
	if err := validateRequired(f, v); err != nil {
		return err
	}
	if !IsStrongPassword(*v) {
		return &FieldError{
			Field: f.key,
			Message: "Senha deve ter pelo menos 8 caracteres, incluir uma letra maiúscula, " +
				"um número e um caractere especial (!@#$&*)",
		}
	}
	if len(*v) > maxPasswordBytes {
		return &FieldError{Field: f.key, Message: "Senha deve ter no máximo 72 bytes"}
	}
	return nil
}

// IsStrongPassword: at least 8 characters on a single line, with an ASCII
// uppercase letter, a digit and one of !@#$&*.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < minPasswordLen || strings.ContainsAny(s, "\n\r\u2028\u2029") {
		return false
	}

	var upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return upper && digit && symbol
}
