package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routetrack/routetrack/internal/validation"
)

type sample struct {
	RouteID string `json:"route_id" validate:"required,uuid"`
	Port    int    `koanf:"port" validate:"gte=1,lte=65535"`
	Env     string `validate:"oneof=development staging production"`
	Hidden  string `json:"-" validate:"omitempty,min=3"`
}

func valid() sample {
	return sample{RouteID: "e84fee1e-fd4f-40f6-85b5-52ff46cbbb6e", Port: 8080, Env: "development"}
}

func TestStruct_Valid(t *testing.T) {
	s := valid()
	assert.NoError(t, validation.Struct(&s))
}

func TestStruct_FieldNames(t *testing.T) {
	s := valid()
	s.RouteID = "not-a-uuid"
	s.Port = 0
	s.Env = "qa"

	err := validation.Struct(&s)
	require.Error(t, err)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 3)

	assert.Equal(t, "route_id", verrs[0].Field)
	assert.Equal(t, "uuid", verrs[0].Tag)
	assert.Equal(t, "route_id must be a valid UUID", verrs[0].Message)

	assert.Equal(t, "port", verrs[1].Field)
	assert.Equal(t, "port must be greater than or equal to 1", verrs[1].Message)

	assert.Equal(t, "Env", verrs[2].Field)
	assert.Equal(t, "Env must be one of: development staging production", verrs[2].Message)
}

func TestStruct_Required(t *testing.T) {
	s := valid()
	s.RouteID = ""

	err := validation.Struct(&s)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "route_id is required", verrs[0].Message)
	assert.Equal(t, "route_id is required", err.Error())
}

func TestStruct_NotAStruct(t *testing.T) {
	err := validation.Struct(42)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "unknown", verrs[0].Field)
}

func TestValidator_Singleton(t *testing.T) {
	assert.Same(t, validation.Validator(), validation.Validator())
}
