package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

func SqlToListOfRow[Model any](ctx context.Context, exec Executor, query squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) ([]Model, error) {
	results := make([]Model, 0)
	err := ForEachRow(ctx, exec, query, func(row pgx.CollectableRow) error {
		model, err := adapter(row)
		if err == nil {
			results = append(results, model)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
