// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style

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

// PostgresRepository implements [Repository] on the catalog.style table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var table = schema.CatalogStyle

var selectColumns = strings.Join(table.Columns(), ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStyle(row rowScanner) (*Style, error) {
	style := &Style{}
	err := row.Scan(
		&style.ID, &style.Key, &style.Name, &style.Description,
		&style.VisualStyle.StyleName, &style.VisualStyle.Medium, &style.VisualStyle.Lineart,
		&style.VisualStyle.Coloring, &style.VisualStyle.Lighting, &style.VisualStyle.Anatomy,
		&style.SystemPrompt, &style.PromptTemplate, &style.TechnicalTags, &style.NegativePrompt,
		&style.ContinuityRules, &style.FormatGuidelines,
		&style.InteractionLanguage, &style.PromptLanguage, &style.Safety.SFWOnly, &style.PreviewImageURL,
		&style.Status, &style.IsDefault, &style.CreatedAt, &style.UpdatedAt,
	)
	return style, err
}

// writable pairs every editable column with its payload value, in a fixed
// order shared by INSERT and UPDATE.
func writable(payload Payload) ([]string, []any) {
	columns := []string{
		table.Key, table.Name, table.Description,
		table.StyleName, table.Medium, table.Lineart, table.Coloring, table.Lighting, table.Anatomy,
		table.SystemPrompt, table.PromptTemplate, table.TechnicalTags, table.NegativePrompt,
		table.ContinuityRules, table.FormatGuidelines,
		table.InteractionLanguage, table.PromptLanguage, table.SFWOnly, table.PreviewImageURL,
		table.Status, table.IsDefault,
	}
	values := []any{
		payload.Key, payload.Name, payload.Description,
		payload.VisualStyle.StyleName, payload.VisualStyle.Medium, payload.VisualStyle.Lineart,
		payload.VisualStyle.Coloring, payload.VisualStyle.Lighting, payload.VisualStyle.Anatomy,
		payload.SystemPrompt, payload.PromptTemplate, payload.TechnicalTags, payload.NegativePrompt,
		payload.ContinuityRules, payload.FormatGuidelines,
		payload.InteractionLanguage, payload.PromptLanguage, payload.Safety.SFWOnly, payload.PreviewImageURL,
		string(payload.Status), payload.IsDefault,
	}
	return columns, values
}

// # Lookups

/*
List retrieves one page of styles matching the search and status filters.

Description: Same predicate and ordering as the page template list: ILIKE
on name, key and description (OR), exact status (AND), newest update first.

Parameters:
  - context: context.Context
  - params: catalog.ListParams (already clamped)

Returns:
  - []*Style: The requested page, possibly empty
  - int: Total matching rows
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, params catalog.ListParams) ([]*Style, int, error) {
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

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, table.Table, whereClause)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_styles")
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
		return nil, 0, dberr.Wrap(err, "list_styles")
	}
	defer rows.Close()

	styles := []*Style{}
	for rows.Next() {
		style, err := scanStyle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_style")
		}
		styles = append(styles, style)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_styles")
	}

	return styles, total, nil
}

// FindByID returns the style with the given id, or nil when none exists.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Style, error) {
	return repository.findOne(context, "find_style", table.ID, id)
}

// FindByKey returns the style with the given key, or nil when none exists.
func (repository *PostgresRepository) FindByKey(context context.Context, key string) (*Style, error) {
	return repository.findOne(context, "find_style_by_key", table.Key, key)
}

// FindDefault returns the default style, or nil when there is none.
func (repository *PostgresRepository) FindDefault(context context.Context) (*Style, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s DESC LIMIT 1`,
		selectColumns, table.Table, table.IsDefault, table.UpdatedAt,
	)

	style, err := scanStyle(repository.pool.QueryRow(context, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_default_style")
	}
	return style, nil
}

func (repository *PostgresRepository) findOne(context context.Context, action, column string, value any) (*Style, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, table.Table, column)

	style, err := scanStyle(repository.pool.QueryRow(context, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return style, nil
}

// # Mutations

/*
Create inserts a new style with a fresh UUIDv7 id.

Description: When the payload is the default, every other default is
cleared inside the same transaction.

Returns:
  - *Style: The stored row
  - error: CONFLICT on a duplicate key, otherwise database errors
*/
func (repository *PostgresRepository) Create(context context.Context, payload Payload) (*Style, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_create_style")
	}
	defer transaction.Rollback(context)

	columns, values := writable(payload)
	columns = append([]string{table.ID}, columns...)
	values = append([]any{uuid.New()}, values...)

	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES (%s, NOW(), NOW())
		RETURNING %s`,
		table.Table, strings.Join(columns, ", "), table.CreatedAt, table.UpdatedAt,
		strings.Join(placeholders, ", "),
		selectColumns,
	)

	style, err := scanStyle(transaction.QueryRow(context, query, values...))
	if err != nil {
		return nil, dberr.Wrap(err, "create_style")
	}

	if style.IsDefault {
		if err := clearOtherDefaults(context, transaction, style.ID); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_create_style")
	}

	return style, nil
}

/*
Update replaces every editable column of an existing style.

Returns:
  - *Style: The stored row, or nil when id matches nothing
  - error: CONFLICT on a duplicate key, otherwise database errors
*/
func (repository *PostgresRepository) Update(context context.Context, id string, payload Payload) (*Style, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_style")
	}
	defer transaction.Rollback(context)

	columns, values := writable(payload)

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table, strings.Join(assignments, ", "), table.UpdatedAt,
		table.ID,
		selectColumns,
	)

	style, err := scanStyle(transaction.QueryRow(context, query, append([]any{id}, values...)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "update_style")
	}

	if style.IsDefault {
		if err := clearOtherDefaults(context, transaction, style.ID); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_style")
	}

	return style, nil
}

// clearOtherDefaults drops the default flag from every style except keepID.
func clearOtherDefaults(context context.Context, transaction pgx.Tx, keepID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s AND %s <> $1`,
		table.Table, table.IsDefault, table.UpdatedAt, table.IsDefault, table.ID,
	)

	if _, err := transaction.Exec(context, query, keepID); err != nil {
		return dberr.Wrap(err, "clear_default_styles")
	}
	return nil
}

// Delete removes a style. It reports whether a row was removed.
func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_style")
	}
	return result.RowsAffected() > 0, nil
}

// # Analytics

// CountByStatus returns the number of styles per status.
func (repository *PostgresRepository) CountByStatus(context context.Context) (map[catalog.Status]int, error) {
	query := fmt.Sprintf(`SELECT %s, count(*) FROM %s GROUP BY %s`, table.Status, table.Table, table.Status)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_styles_by_status")
	}
	defer rows.Close()

	counts := map[catalog.Status]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_style_count")
		}
		counts[catalog.Status(status)] = count
	}

	return counts, dberr.Wrap(rows.Err(), "iterate_style_counts")
}
