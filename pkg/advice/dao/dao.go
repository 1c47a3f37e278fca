package dao

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hakantaylan/problem-handler/pkg/advice"
	"github.com/hakantaylan/problem-handler/pkg/problem"
)

// ConstraintViolationError wraps a storage driver error with the engine it
// came from, for drivers whose errors carry no type information of their
// own. Mongo driver errors are recognized directly and do not need it.
type ConstraintViolationError struct {
	DB  DBType
	Err error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation (%s): %v", e.DB, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }

// Bundle returns the DAO advices in dispatch order.
func Bundle(base *advice.Base, resolvers ...ConstraintNameResolver) []advice.Advice {
	if len(resolvers) == 0 {
		resolvers = []ConstraintNameResolver{
			MongoConstraintNameResolver{},
			PostgresConstraintNameResolver{},
			MySQLConstraintNameResolver{},
		}
	}
	byType := make(map[DBType]ConstraintNameResolver, len(resolvers))
	for _, r := range resolvers {
		byType[r.DBType()] = r
	}
	return []advice.Advice{ConstraintViolationAdvice{Base: base, resolvers: byType}}
}

// ConstraintViolationAdvice maps storage constraint violations to 409. The
// error key is the constraint name recovered by the engine's resolver, so
// authored messages can address individual indexes.
type ConstraintViolationAdvice struct {
	*advice.Base
	resolvers map[DBType]ConstraintNameResolver
}

func (a ConstraintViolationAdvice) CanHandle(err error) bool {
	var cve *ConstraintViolationError
	return mongo.IsDuplicateKeyError(err) || errors.As(err, &cve)
}

func (a ConstraintViolationAdvice) Handle(ctx context.Context, err error) advice.Resolution {
	dbType, raw := a.classify(err)

	status := a.StatusOr(err, http.StatusConflict)
	errorKey := problem.KeyConstraintViolation
	defaultDetail := "constraint violated"

	var constraintName string
	if resolver, ok := a.resolvers[dbType]; ok {
		constraintName = resolver.ResolveConstraintName(raw)
		errorKey += problem.Dot + constraintName
		defaultDetail = fmt.Sprintf("constraint '%s' violated", constraintName)
	}

	code, title, detail := a.Resolvers(errorKey, status, defaultDetail, constraintName)
	p := a.NewProblem(ctx, err, status, code, title, detail, nil)
	return advice.Resolution{Status: status, Problem: p}
}

// classify determines the storage engine and the raw message to parse.
func (a ConstraintViolationAdvice) classify(err error) (DBType, string) {
	var cve *ConstraintViolationError
	if errors.As(err, &cve) {
		return cve.DB, cve.Err.Error()
	}
	return DBTypeMongo, err.Error()
}
