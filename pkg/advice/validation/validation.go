// Package validation provides advices for request-validation failures:
// constraint violations reported by go-playground/validator, body type
// mismatches and unreadable request payloads. All of them map to 400 unless
// the error declares its own status.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/problem"
	"github.com/hakantaylan/problem-handler/pkg/problem/message"
)

// DefaultViolationStatus is the status for client input that failed
// validation.
const DefaultViolationStatus = http.StatusBadRequest

// Bundle returns the validation advices in dispatch order.
func Bundle(base *advice.Base) []advice.Advice {
	return []advice.Advice{
		ViolationsAdvice{Base: base},
		TypeMismatchAdvice{Base: base},
		NotReadableAdvice{Base: base},
	}
}

// ViolationsAdvice handles validator.ValidationErrors. Every violation adds
// one propertyPath parameter, in the order reported by the validator, so
// clients can render field-specific messages.
type ViolationsAdvice struct {
	*advice.Base
}

func (a ViolationsAdvice) CanHandle(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

func (a ViolationsAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	var ve validator.ValidationErrors
	errors.As(err, &ve)

	status := a.StatusOr(err, DefaultViolationStatus)
	params := problem.NewParams()

	messages := lo.Map(ve, func(fe validator.FieldError, _ int) string {
		path := propertyPath(fe)
		params.Add(problem.PropertyPathKey, path)
		return a.violationMessage(ctx, fe, path)
	})

	code, title, detail := a.Resolvers(problem.KeyConstraintViolations, status, strings.Join(messages, ", "))
	p := a.NewProblem(ctx, err, status, code, title, detail, params)
	return advice.Resolution{Status: status, Problem: p}
}

// violationMessage resolves one violation's text. The key is derived from
// the validation tag and the property path, never from the raw message, so
// codes stay stable across wording changes.
func (a ViolationsAdvice) violationMessage(ctx context.Context, fe validator.FieldError, path string) string {
	key := problem.DetailKeyPrefix + fe.Tag() + problem.Dot + path
	fallback := fmt.Sprintf("'%s' failed constraint '%s'", path, fe.Tag())
	return a.Messages.Message(message.LocaleOf(ctx), message.NewResolver(key, fallback, fe.Param()))
}

// propertyPath strips the root struct segment from the violation namespace:
// "CreateOrder.Items[0].SKU" becomes "Items[0].SKU".
func propertyPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	if ns != "" {
		return ns
	}
	return fe.Field()
}

// TypeMismatchAdvice handles values that cannot be converted to the target
// type: JSON fields of the wrong type and numeric parameter conversions.
type TypeMismatchAdvice struct {
	*advice.Base
}

func (a TypeMismatchAdvice) CanHandle(err error) bool {
	var (
		ute *json.UnmarshalTypeError
		ne  *strconv.NumError
	)
	return errors.As(err, &ute) || errors.As(err, &ne)
}

func (a TypeMismatchAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, DefaultViolationStatus)
	params := problem.NewParams()

	errorKey := problem.KeyTypeMismatch
	defaultDetail := err.Error()

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		errorKey += problem.Dot + ute.Field
		params.Add(problem.PropertyPathKey, ute.Field)
		defaultDetail = fmt.Sprintf("invalid value for property '%s': expected %s", ute.Field, ute.Type)
	}

	code, title, detail := a.Resolvers(errorKey, status, defaultDetail)
	p := a.NewProblem(ctx, err, status, code, title, detail, params)
	return advice.Resolution{Status: status, Problem: p}
}

// NotReadableAdvice handles request payloads that cannot be parsed at all:
// malformed JSON or a truncated body.
type NotReadableAdvice struct {
	*advice.Base
}

func (a NotReadableAdvice) CanHandle(err error) bool {
	var se *json.SyntaxError
	return errors.As(err, &se) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

func (a NotReadableAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	status := a.StatusOr(err, DefaultViolationStatus)
	code, title, detail := a.Resolvers(problem.KeyMessageNotReadable, status, "request body is not readable")
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}
