package handler

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/octobees/people-api/internal/auth"
	"github.com/octobees/people-api/internal/entity"
	"github.com/octobees/people-api/internal/repository"
	"github.com/octobees/people-api/internal/service"
)

type stubPeopleRepo struct {
	findByUsername func(ctx context.Context, username string) (*entity.Person, error)
	findByID       func(ctx context.Context, id int64) (*entity.Person, error)
	create         func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	update         func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	updateRole     func(ctx context.Context, id int64, role string) (*entity.Person, error)
	delete         func(ctx context.Context, id int64) error
	list           func(ctx context.Context) ([]entity.Person, error)
}

func (s *stubPeopleRepo) FindByUsername(ctx context.Context, username string) (*entity.Person, error) {
	if s.findByUsername != nil {
		return s.findByUsername(ctx, username)
	}
	return nil, repository.ErrPersonNotFound
}

func (s *stubPeopleRepo) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubPeopleRepo) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if s.create != nil {
		return s.create(ctx, person)
	}
	return nil, errors.New("not implemented")
}

func (s *stubPeopleRepo) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if s.update != nil {
		return s.update(ctx, person)
	}
	return nil, errors.New("not implemented")
}

func (s *stubPeopleRepo) UpdateRole(ctx context.Context, id int64, role string) (*entity.Person, error) {
	if s.updateRole != nil {
		return s.updateRole(ctx, id, role)
	}
	return nil, errors.New("not implemented")
}

func (s *stubPeopleRepo) Delete(ctx context.Context, id int64) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errors.New("not implemented")
}

func (s *stubPeopleRepo) List(ctx context.Context) ([]entity.Person, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errors.New("not implemented")
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour, "people-test")
}

func newAuthHandler(repo repository.PeopleRepository) *AuthHandler {
	svc := service.NewAuthService(repo, service.NewPersonValidator(repo), testJWTManager(), quietLogger())
	return NewAuthHandler(svc)
}

func newPeopleHandler(repo repository.PeopleRepository) *PeopleHandler {
	return NewPeopleHandler(service.NewPeopleService(repo, service.NewPersonValidator(repo)))
}
