package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantNome      *string
		wantSenha     *string
		wantNotString []string
		wantUnknown   []string
		wantErr       bool
	}{
		{
			name:      "strings",
			body:      `{"nome":"Ana","senha":"Abcdef1!"}`,
			wantNome:  strPtr("Ana"),
			wantSenha: strPtr("Abcdef1!"),
		},
		{
			name:          "wrong types are collected per key",
			body:          `{"senha":123,"nome":"Jo3nas","email":true}`,
			wantNome:      strPtr("Jo3nas"),
			wantNotString: []string{"email", "senha"},
		},
		{
			name:          "null is not a string",
			body:          `{"nome":null}`,
			wantNotString: []string{"nome"},
		},
		{
			name:          "nested values",
			body:          `{"nome":{"first":"Ana"},"senha":["x"]}`,
			wantNotString: []string{"nome", "senha"},
		},
		{
			name:        "unknown keys are sorted",
			body:        `{"z":1,"nome":"Ana","admin":true}`,
			wantNome:    strPtr("Ana"),
			wantUnknown: []string{"admin", "z"},
		},
		{name: "empty object", body: `{}`},
		{name: "array body", body: `["Ana"]`, wantErr: true},
		{name: "syntax error", body: `{"nome":`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var r Request
			err := json.Unmarshal([]byte(tt.body), &r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantNome, r.Nome)
			assert.Equal(t, tt.wantSenha, r.Senha)
			assert.Equal(t, tt.wantUnknown, r.Unknown)

			var notString []string
			for _, k := range []string{"nome", "sobrenome", "email", "telefone", "senha"} {
				if r.NotString[k] {
					notString = append(notString, k)
				}
			}
			assert.Equal(t, tt.wantNotString, notString)
		})
	}
}

func TestRequest_UnmarshalJSON_ResetsPreviousValues(t *testing.T) {
	r := Request{Email: strPtr("old@example.com")}
	require.NoError(t, json.Unmarshal([]byte(`{"nome":"Ana"}`), &r))

	assert.Nil(t, r.Email)
	assert.Equal(t, "Ana", *r.Nome)
}

func strPtr(s string) *string { return &s }
