package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/config"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

func newTestBase() *advice.Base {
	props := config.DefaultProperties()
	return advice.NewBase(props, message.NewProvider(nil), problem.NewStatusRegistry())
}

func TestAuthenticationAdvice(t *testing.T) {
	adv := AuthenticationAdvice{Base: newTestBase()}

	t.Run("CanHandle", func(t *testing.T) {
		assert.True(t, adv.CanHandle(ErrAuthentication))
		assert.True(t, adv.CanHandle(ErrTokenExpired))
		assert.True(t, adv.CanHandle(fmt.Errorf("verify: %w", ErrTokenExpired)))
		assert.False(t, adv.CanHandle(ErrAccessDenied))
		assert.False(t, adv.CanHandle(errors.New("plain")))
	})

	t.Run("Handle", func(t *testing.T) {
		res := adv.Handle(context.Background(), ErrAuthentication)

		assert.Equal(t, http.StatusUnauthorized, res.Status)
		assert.Equal(t, "401", res.Problem.Code())
		assert.Equal(t, "authentication failed", res.Problem.Detail())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		res := adv.Handle(context.Background(), ErrTokenExpired)

		assert.Equal(t, http.StatusUnauthorized, res.Status)
		assert.Equal(t, "token expired", res.Problem.Detail())
	})
}

func TestAccessDeniedAdvice(t *testing.T) {
	adv := AccessDeniedAdvice{Base: newTestBase()}

	assert.True(t, adv.CanHandle(ErrAccessDenied))
	assert.False(t, adv.CanHandle(ErrAuthentication))

	res := adv.Handle(context.Background(), ErrAccessDenied)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "access denied", res.Problem.Detail())
}

func TestBundle_Order(t *testing.T) {
	advices := Bundle(newTestBase())

	require.Len(t, advices, 2)
	assert.IsType(t, AuthenticationAdvice{}, advices[0])
	assert.IsType(t, AccessDeniedAdvice{}, advices[1])
}
