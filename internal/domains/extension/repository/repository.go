package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/internal/domains/extension/model"
	gDto "roombook/shared/dto"
	gRepo "roombook/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Extension interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Extension) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Extension, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Extension, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Extension]
}

func New(db *postgres.Connection, otel otel.Otel) Extension {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Extension](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
