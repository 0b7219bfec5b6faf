package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{"vacío", dto.PageRequest{}, dto.PageRequest{Limit: 20}},
		{"dentro de rango", dto.PageRequest{Limit: 50, Offset: 10}, dto.PageRequest{Limit: 50, Offset: 10}},
		{"límite negativo", dto.PageRequest{Limit: -5}, dto.PageRequest{Limit: 20}},
		{"sobre el máximo", dto.PageRequest{Limit: 500, Offset: 3}, dto.PageRequest{Limit: 100, Offset: 3}},
		{"offset negativo", dto.PageRequest{Limit: 1, Offset: -1}, dto.PageRequest{Limit: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
