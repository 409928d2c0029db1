package service

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/octobees/people-api/internal/entity"
)

type mockPeopleRepository struct {
	findByUsername func(ctx context.Context, username string) (*entity.Person, error)
	findByID       func(ctx context.Context, id int64) (*entity.Person, error)
	create         func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	update         func(ctx context.Context, person *entity.Person) (*entity.Person, error)
	updateRole     func(ctx context.Context, id int64, role string) (*entity.Person, error)
	delete         func(ctx context.Context, id int64) error
	list           func(ctx context.Context) ([]entity.Person, error)
}

func (m *mockPeopleRepository) FindByUsername(ctx context.Context, username string) (*entity.Person, error) {
	if m.findByUsername != nil {
		return m.findByUsername(ctx, username)
	}
	return nil, errors.New("FindByUsername not implemented")
}

func (m *mockPeopleRepository) FindByID(ctx context.Context, id int64) (*entity.Person, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("FindByID not implemented")
}

func (m *mockPeopleRepository) Create(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if m.create != nil {
		return m.create(ctx, person)
	}
	return nil, errors.New("Create not implemented")
}

func (m *mockPeopleRepository) Update(ctx context.Context, person *entity.Person) (*entity.Person, error) {
	if m.update != nil {
		return m.update(ctx, person)
	}
	return nil, errors.New("Update not implemented")
}

func (m *mockPeopleRepository) UpdateRole(ctx context.Context, id int64, role string) (*entity.Person, error) {
	if m.updateRole != nil {
		return m.updateRole(ctx, id, role)
	}
	return nil, errors.New("UpdateRole not implemented")
}

func (m *mockPeopleRepository) Delete(ctx context.Context, id int64) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("Delete not implemented")
}

func (m *mockPeopleRepository) List(ctx context.Context) ([]entity.Person, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("List not implemented")
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func stringPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}
