package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// clientColumns is the select list shared by every client read that
// aggregates tags. array_remove turns the all-NULL aggregate produced by the
// left join into an empty array.
const clientColumns = `c.id, c.name, c.email, c.phone, c.company, c.address, c.notes, c.user_id, c.created_at,
	array_remove(array_agg(t.tag_name), NULL)`

// ClientRepository persists clients and their tag and custom-field child
// rows. Multi-table writes run in one transaction; a failure anywhere rolls
// back everything.
type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindAll returns the user's clients with aggregated tags, ordered by name.
func (r *ClientRepository) FindAll(ctx context.Context, userID int64) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+`
		 FROM clients c
		 LEFT JOIN client_tags t ON c.id = t.client_id
		 WHERE c.user_id = $1
		 GROUP BY c.id
		 ORDER BY c.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// FindByID returns one client with aggregated tags, or (nil, nil) when the
// client does not exist or belongs to another user.
func (r *ClientRepository) FindByID(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
	client := domain.Client{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+`
		 FROM clients c
		 LEFT JOIN client_tags t ON c.id = t.client_id
		 WHERE c.id = $1 AND c.user_id = $2
		 GROUP BY c.id`,
		clientID, userID,
	).Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Company,
		&client.Address, &client.Notes, &client.UserID, &client.CreatedAt,
		pq.Array(&client.Tags))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	if client.Tags == nil {
		client.Tags = []string{}
	}
	return &client, nil
}

// FindCustomFields returns the client's custom fields as a name→value map.
func (r *ClientRepository) FindCustomFields(ctx context.Context, clientID int64) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT field_name, field_value FROM client_custom_fields WHERE client_id = $1`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("find custom fields: %w", err)
	}
	defer rows.Close()

	fields := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		fields[name] = value
	}
	return fields, rows.Err()
}

// Create inserts the client row plus its tag and custom-field rows in one
// transaction.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client, tags []string, customFields map[string]string) (*domain.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO clients (name, email, phone, company, address, notes, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		client.Name, client.Email, client.Phone, client.Company, client.Address, client.Notes, client.UserID,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	if err := insertTags(ctx, tx, client.ID, tags); err != nil {
		return nil, err
	}
	if err := insertCustomFields(ctx, tx, client.ID, customFields); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return client, nil
}

// Update rewrites the scalar columns and, for each supplied child set,
// deletes all existing rows and reinserts the new ones. A nil Tags or
// CustomFields leaves that child set untouched.
func (r *ClientRepository) Update(ctx context.Context, clientID int64, in ports.ClientInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE clients SET name = $1, email = $2, phone = $3, company = $4, address = $5, notes = $6 WHERE id = $7`,
		in.Name, in.Email, in.Phone, in.Company, in.Address, in.Notes, clientID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}

	if in.Tags != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM client_tags WHERE client_id = $1`, clientID); err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}
		if err := insertTags(ctx, tx, clientID, *in.Tags); err != nil {
			return err
		}
	}

	if in.CustomFields != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM client_custom_fields WHERE client_id = $1`, clientID); err != nil {
			return fmt.Errorf("delete custom fields: %w", err)
		}
		if err := insertCustomFields(ctx, tx, clientID, *in.CustomFields); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete removes the client row. Tags, custom fields, and dependent tasks
// and meetings are removed by ON DELETE CASCADE.
func (r *ClientRepository) Delete(ctx context.Context, clientID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, clientID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// Import inserts the parsed CSV rows in one transaction spanning the whole
// file. Rows whose email already exists for this user are skipped. Returns
// the number of inserted clients.
func (r *ClientRepository) Import(ctx context.Context, userID int64, importRows []ports.ImportRow) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	imported := 0
	for _, row := range importRows {
		var exists bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1 AND user_id = $2)`,
			row.Email, userID,
		).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("check existing client: %w", err)
		}
		if exists {
			continue
		}

		var clientID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO clients (name, email, phone, company, address, notes, user_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			row.Name, row.Email, row.Phone, row.Company, row.Address, row.Notes, userID,
		).Scan(&clientID)
		if err != nil {
			return 0, fmt.Errorf("insert imported client: %w", err)
		}

		if err := insertTags(ctx, tx, clientID, row.Tags); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return imported, nil
}

// FindForExport returns the user's clients with aggregated tags, ordered by
// name, optionally excluding clients carrying the "inactive" tag.
func (r *ClientRepository) FindForExport(ctx context.Context, userID int64, excludeInactive bool) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + `
		 FROM clients c
		 LEFT JOIN client_tags t ON c.id = t.client_id
		 WHERE c.user_id = $1`
	if excludeInactive {
		query += `
		 AND NOT EXISTS (SELECT 1 FROM client_tags x WHERE x.client_id = c.id AND x.tag_name = 'inactive')`
	}
	query += `
		 GROUP BY c.id
		 ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients for export: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// insertTags bulk-inserts tag rows with one parameterized multi-row VALUES
// statement. Never interpolate tag text into the query.
func insertTags(ctx context.Context, tx *sql.Tx, clientID int64, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(tags))
	args := make([]any, 0, len(tags)*2)
	for i, tag := range tags {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, tag, clientID)
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO client_tags (tag_name, client_id) VALUES `+strings.Join(placeholders, ", "),
		args...,
	)
	if err != nil {
		return fmt.Errorf("insert tags: %w", err)
	}
	return nil
}

func insertCustomFields(ctx context.Context, tx *sql.Tx, clientID int64, fields map[string]string) error {
	for name, value := range fields {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO client_custom_fields (client_id, field_name, field_value) VALUES ($1, $2, $3)`,
			clientID, name, value,
		)
		if err != nil {
			return fmt.Errorf("insert custom field: %w", err)
		}
	}
	return nil
}

func scanClients(rows *sql.Rows) ([]domain.Client, error) {
	clients := []domain.Client{}
	for rows.Next() {
		var client domain.Client
		err := rows.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Company,
			&client.Address, &client.Notes, &client.UserID, &client.CreatedAt,
			pq.Array(&client.Tags))
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if client.Tags == nil {
			client.Tags = []string{}
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

var _ ports.ClientRepository = (*ClientRepository)(nil)
