package validation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

type mapSource map[string]string

func (m mapSource) Lookup(_ language.Tag, key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func newTestBase(source message.Source) *advice.Base {
	props := config.DefaultProperties()
	return advice.NewBase(props, message.NewProvider(source), problem.NewStatusRegistry())
}

type createUser struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"max=150"`
}

func validate(t *testing.T, v any) error {
	t.Helper()
	err := validator.New().Struct(v)
	require.Error(t, err)
	return err
}

func TestViolationsAdvice(t *testing.T) {
	adv := ViolationsAdvice{Base: newTestBase(nil)}

	t.Run("CanHandle", func(t *testing.T) {
		assert.True(t, adv.CanHandle(validate(t, createUser{Age: 200})))
		assert.False(t, adv.CanHandle(errors.New("plain")))
	})

	t.Run("OneParamPerViolationInOrder", func(t *testing.T) {
		err := validate(t, createUser{Age: 200})

		res := adv.Handle(context.Background(), err)

		assert.Equal(t, http.StatusBadRequest, res.Status)
		paths := paramValues(res.Problem, problem.PropertyPathKey)
		assert.Equal(t, []any{"Name", "Email", "Age"}, paths)
	})

	t.Run("DetailJoinsViolationMessages", func(t *testing.T) {
		err := validate(t, createUser{Name: "ok", Email: "ok@example.com", Age: 200})

		res := adv.Handle(context.Background(), err)

		assert.Equal(t, "'Age' failed constraint 'max'", res.Problem.Detail())
	})

	t.Run("PerViolationMessageFromSource", func(t *testing.T) {
		source := mapSource{
			"detail.max.Age": "age may not exceed {0}",
		}
		advWithSource := ViolationsAdvice{Base: newTestBase(source)}
		err := validate(t, createUser{Name: "ok", Email: "ok@example.com", Age: 200})

		res := advWithSource.Handle(context.Background(), err)

		assert.Equal(t, "age may not exceed 150", res.Problem.Detail())
	})

	t.Run("NestedFieldPath", func(t *testing.T) {
		type address struct {
			City string `validate:"required"`
		}
		type order struct {
			Shipping address
		}

		err := validate(t, order{})

		res := adv.Handle(context.Background(), err)

		paths := paramValues(res.Problem, problem.PropertyPathKey)
		require.Len(t, paths, 1)
		assert.Equal(t, "Shipping.City", paths[0])
	})
}

type unprocessableError struct {
	cause error
}

func (e *unprocessableError) Error() string   { return "unprocessable: " + e.cause.Error() }
func (e *unprocessableError) Unwrap() error   { return e.cause }
func (e *unprocessableError) StatusCode() int { return http.StatusUnprocessableEntity }

func TestViolationsAdvice_DeclaredStatusWins(t *testing.T) {
	// Given a wrapper that declares its own status around the violations
	adv := ViolationsAdvice{Base: newTestBase(nil)}
	err := &unprocessableError{cause: validate(t, createUser{Age: 200})}
	require.True(t, adv.CanHandle(err))

	// When
	res := adv.Handle(context.Background(), err)

	// Then the declared status beats the validation default
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Problem.Status())
}

func TestTypeMismatchAdvice(t *testing.T) {
	adv := TypeMismatchAdvice{Base: newTestBase(nil)}

	t.Run("CanHandle", func(t *testing.T) {
		var target struct {
			Count int `json:"count"`
		}
		jsonErr := json.Unmarshal([]byte(`{"count":"many"}`), &target)
		require.Error(t, jsonErr)
		assert.True(t, adv.CanHandle(jsonErr))

		_, numErr := strconv.Atoi("not-a-number")
		assert.True(t, adv.CanHandle(numErr))

		assert.False(t, adv.CanHandle(errors.New("plain")))
	})

	t.Run("JSONFieldMismatch", func(t *testing.T) {
		var target struct {
			Count int `json:"count"`
		}
		err := json.Unmarshal([]byte(`{"count":"many"}`), &target)
		require.Error(t, err)

		res := adv.Handle(context.Background(), err)

		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Contains(t, res.Problem.Detail(), "invalid value for property 'count'")

		path, ok := res.Problem.Parameter(problem.PropertyPathKey)
		require.True(t, ok)
		assert.Equal(t, "count", path)
	})

	t.Run("NumericConversion", func(t *testing.T) {
		_, err := strconv.Atoi("not-a-number")
		require.Error(t, err)

		res := adv.Handle(context.Background(), err)

		assert.Equal(t, http.StatusBadRequest, res.Status)
		_, ok := res.Problem.Parameter(problem.PropertyPathKey)
		assert.False(t, ok)
	})
}

func TestNotReadableAdvice(t *testing.T) {
	adv := NotReadableAdvice{Base: newTestBase(nil)}

	t.Run("CanHandle", func(t *testing.T) {
		var target map[string]any
		syntaxErr := json.Unmarshal([]byte(`{"broken`), &target)
		require.Error(t, syntaxErr)

		assert.True(t, adv.CanHandle(syntaxErr))
		assert.True(t, adv.CanHandle(io.ErrUnexpectedEOF))
		assert.True(t, adv.CanHandle(io.EOF))
		assert.False(t, adv.CanHandle(errors.New("plain")))
	})

	t.Run("Handle", func(t *testing.T) {
		res := adv.Handle(context.Background(), io.ErrUnexpectedEOF)

		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "request body is not readable", res.Problem.Detail())
	})
}

func TestBundle_Order(t *testing.T) {
	advices := Bundle(newTestBase(nil))

	require.Len(t, advices, 3)
	assert.IsType(t, ViolationsAdvice{}, advices[0])
	assert.IsType(t, TypeMismatchAdvice{}, advices[1])
	assert.IsType(t, NotReadableAdvice{}, advices[2])
}

func paramValues(p problem.Problem, key string) []any {
	var values []any
	for _, entry := range p.Parameters() {
		if entry.Key == key {
			values = append(values, entry.Value)
		}
	}
	return values
}
