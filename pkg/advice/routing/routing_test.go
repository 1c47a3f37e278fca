package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

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

func TestMissingParameterAdvice(t *testing.T) {
	adv := MissingParameterAdvice{Base: newTestBase(nil)}
	err := &MissingParameterError{Name: "orderId", In: "query"}

	t.Run("CanHandle", func(t *testing.T) {
		assert.True(t, adv.CanHandle(err))
		assert.True(t, adv.CanHandle(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, adv.CanHandle(errors.New("plain")))
	})

	t.Run("Handle", func(t *testing.T) {
		res := adv.Handle(context.Background(), err)

		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "required query parameter 'orderId' is not present", res.Problem.Detail())
	})

	t.Run("PerParameterMessage", func(t *testing.T) {
		source := mapSource{
			"detail.missing.request.parameter.orderId": "please pass {0} in the {1}",
		}
		advWithSource := MissingParameterAdvice{Base: newTestBase(source)}

		res := advWithSource.Handle(context.Background(), err)

		assert.Equal(t, "please pass orderId in the query", res.Problem.Detail())
	})
}

func TestNotFoundAdvice(t *testing.T) {
	adv := NotFoundAdvice{Base: newTestBase(nil)}

	assert.True(t, adv.CanHandle(ErrNotFound))
	assert.True(t, adv.CanHandle(fmt.Errorf("GET /missing: %w", ErrNotFound)))
	assert.False(t, adv.CanHandle(errors.New("plain")))

	res := adv.Handle(context.Background(), ErrNotFound)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "no handler found", res.Problem.Detail())
}

func TestMethodNotAllowedAdvice(t *testing.T) {
	adv := MethodNotAllowedAdvice{Base: newTestBase(nil)}

	assert.True(t, adv.CanHandle(ErrMethodNotAllowed))
	assert.False(t, adv.CanHandle(ErrNotFound))

	res := adv.Handle(context.Background(), ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Status)
}

func TestMediaTypeAdvice(t *testing.T) {
	adv := MediaTypeAdvice{Base: newTestBase(nil)}
	err := &UnsupportedMediaTypeError{
		MediaType: "text/csv",
		Supported: []string{"application/json", "application/xml"},
	}

	assert.True(t, adv.CanHandle(err))
	assert.False(t, adv.CanHandle(errors.New("plain")))

	res := adv.Handle(context.Background(), err)
	assert.Equal(t, http.StatusUnsupportedMediaType, res.Status)
	assert.Equal(t, "media type 'text/csv' is not supported, supported: application/json, application/xml", res.Problem.Detail())
}

func TestBundle_Order(t *testing.T) {
	advices := Bundle(newTestBase(nil))

	require.Len(t, advices, 4)
	assert.IsType(t, MissingParameterAdvice{}, advices[0])
	assert.IsType(t, MediaTypeAdvice{}, advices[1])
	assert.IsType(t, NotFoundAdvice{}, advices[2])
	assert.IsType(t, MethodNotAllowedAdvice{}, advices[3])
}
