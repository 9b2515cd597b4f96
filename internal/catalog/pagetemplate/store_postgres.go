// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/database/schema"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/dberr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// PostgresRepository implements [Repository] on the catalog.pagetemplate table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var table = schema.CatalogPageTemplate

var selectColumns = strings.Join(table.Columns(), ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*PageTemplate, error) {
	template := &PageTemplate{}
	err := row.Scan(
		&template.ID, &template.Key, &template.Name, &template.Description,
		&template.Type, &template.Orientation, &template.AspectRatio, &template.ResolutionTier,
		&template.Layout, &template.Rows, &template.Cols, &template.PanelCount,
		&template.Gutter, &template.SafeArea, &template.Status, &template.IsDefault,
		&template.CreatedAt, &template.UpdatedAt,
	)
	return template, err
}

// # Lookups

/*
List retrieves one page of templates matching the search and status filters.

Description: The search term is matched with ILIKE against name, key and
description (OR), and combined with the exact status filter (AND). Rows are
ordered by most recent update, newest id first on ties. The total is counted
with the same predicate.

Parameters:
  - context: context.Context
  - params: catalog.ListParams (already clamped)

Returns:
  - []*PageTemplate: The requested page, possibly empty
  - int: Total matching rows
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, params catalog.ListParams) ([]*PageTemplate, int, error) {
	var (
		conditions []string
		args       []any
	)

	if params.Search != "" {
		args = append(args, "%"+catalog.EscapeLike(params.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s OR %s ILIKE %s)",
			table.Name, placeholder, table.Key, placeholder, table.Description, placeholder,
		))
	}

	if params.Status != "" {
		args = append(args, string(params.Status))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.Status, len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, table.Table, whereClause)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_page_templates")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d`,
		selectColumns, table.Table, whereClause,
		table.UpdatedAt, table.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, listQuery, append(args, params.PageSize, params.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_page_templates")
	}
	defer rows.Close()

	templates := []*PageTemplate{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_page_template")
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_page_templates")
	}

	return templates, total, nil
}

// FindByID returns the template with the given id, or nil when none exists.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*PageTemplate, error) {
	return repository.findOne(context, "find_page_template", table.ID, id)
}

// FindByKey returns the template with the given key, or nil when none exists.
func (repository *PostgresRepository) FindByKey(context context.Context, key string) (*PageTemplate, error) {
	return repository.findOne(context, "find_page_template_by_key", table.Key, key)
}

// FindDefault returns the default template, or nil when there is none.
func (repository *PostgresRepository) FindDefault(context context.Context) (*PageTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC LIMIT 1`,
		selectColumns, table.Table, table.IsDefault, table.UpdatedAt,
	)

	template, err := scanTemplate(repository.pool.QueryRow(context, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_default_page_template")
	}
	return template, nil
}

func (repository *PostgresRepository) findOne(context context.Context, action, column string, value any) (*PageTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, column)

	template, err := scanTemplate(repository.pool.QueryRow(context, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return template, nil
}

// # Mutations

/*
Create inserts a new template with a fresh UUIDv7 id.

Description: When the payload is the default, every other default is
cleared inside the same transaction, so the new row is the only default
once committed.

Parameters:
  - context: context.Context
  - payload: Payload (normalized by [BuildPayload])

Returns:
  - *PageTemplate: The stored row
  - error: CONFLICT on a duplicate key, otherwise database errors
*/
func (repository *PostgresRepository) Create(context context.Context, payload Payload) (*PageTemplate, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_create_page_template")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING %s`,
		table.Table,
		table.ID, table.Key, table.Name, table.Description, table.Type, table.Orientation,
		table.AspectRatio, table.ResolutionTier, table.Layout, table.Rows, table.Cols,
		table.PanelCount, table.Gutter, table.SafeArea, table.Status, table.IsDefault,
		table.CreatedAt, table.UpdatedAt,
		selectColumns,
	)

	template, err := scanTemplate(transaction.QueryRow(context, query,
		uuid.New(), payload.Key, payload.Name, payload.Description,
		string(payload.Type), string(payload.Orientation), payload.AspectRatio,
		string(payload.ResolutionTier), string(payload.Layout),
		payload.Rows, payload.Cols, payload.PanelCount, payload.Gutter, payload.SafeArea,
		string(payload.Status), payload.IsDefault,
	))
	if err != nil {
		return nil, dberr.Wrap(err, "create_page_template")
	}

	if template.IsDefault {
		if err := clearOtherDefaults(context, transaction, template.ID); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_create_page_template")
	}

	return template, nil
}

/*
Update replaces every editable column of an existing template.

Parameters:
  - context: context.Context
  - id: string
  - payload: Payload (the merged, normalized record)

Returns:
  - *PageTemplate: The stored row, or nil when id matches nothing
  - error: CONFLICT on a duplicate key, otherwise database errors
*/
func (repository *PostgresRepository) Update(context context.Context, id string, payload Payload) (*PageTemplate, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_page_template")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9,
		    %s = $10, %s = $11, %s = $12, %s = $13, %s = $14, %s = $15, %s = $16, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.Key, table.Name, table.Description, table.Type, table.Orientation,
		table.AspectRatio, table.ResolutionTier, table.Layout, table.Rows, table.Cols,
		table.PanelCount, table.Gutter, table.SafeArea, table.Status, table.IsDefault,
		table.UpdatedAt,
		table.ID,
		selectColumns,
	)

	template, err := scanTemplate(transaction.QueryRow(context, query,
		id, payload.Key, payload.Name, payload.Description,
		string(payload.Type), string(payload.Orientation), payload.AspectRatio,
		string(payload.ResolutionTier), string(payload.Layout),
		payload.Rows, payload.Cols, payload.PanelCount, payload.Gutter, payload.SafeArea,
		string(payload.Status), payload.IsDefault,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "update_page_template")
	}

	if template.IsDefault {
		if err := clearOtherDefaults(context, transaction, template.ID); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_page_template")
	}

	return template, nil
}

// clearOtherDefaults drops the default flag from every template except keepID.
func clearOtherDefaults(context context.Context, transaction pgx.Tx, keepID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s AND %s <> $1`,
		table.Table, table.IsDefault, table.UpdatedAt, table.IsDefault, table.ID,
	)

	if _, err := transaction.Exec(context, query, keepID); err != nil {
		return dberr.Wrap(err, "clear_default_page_templates")
	}
	return nil
}

// Delete removes a template. It reports whether a row was removed.
func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_page_template")
	}
	return result.RowsAffected() > 0, nil
}

// # Analytics

// CountByStatus returns the number of templates per status.
func (repository *PostgresRepository) CountByStatus(context context.Context) (map[catalog.Status]int, error) {
	query := fmt.Sprintf(`SELECT %s, count(*) FROM %s GROUP BY %s`, table.Status, table.Table, table.Status)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_page_templates_by_status")
	}
	defer rows.Close()

	counts := map[catalog.Status]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_page_template_count")
		}
		counts[catalog.Status(status)] = count
	}

	return counts, dberr.Wrap(rows.Err(), "iterate_page_template_counts")
}
