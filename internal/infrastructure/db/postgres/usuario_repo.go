package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/registroapp/usuario-service/internal/domain"
)

// UsuarioRepo is the durable account store over a relational table. The
// table owns uniqueness of the email column; concurrent writers are
// serialized by the database, not by this layer.
type UsuarioRepo struct {
	db *sql.DB
}

func NewUsuarioRepo(db *sql.DB) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUsuario(row *sql.Row) (usuarioRow, error) {
	var ur usuarioRow
	err := row.Scan(&ur.ID, &ur.Nombre, &ur.Apellido, &ur.Email, &ur.Password)
	return ur, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---------- usuario.UsuarioRepo ----------

func (r *UsuarioRepo) List(ctx context.Context) ([]domain.Usuario, error) {
	const q = `
SELECT id, nombre, apellido, email, password
FROM usuarios
ORDER BY id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Usuario
	for rows.Next() {
		var ur usuarioRow
		if err := rows.Scan(&ur.ID, &ur.Nombre, &ur.Apellido, &ur.Email, &ur.Password); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomain(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (domain.Usuario, error) {
	const q = `
SELECT id, nombre, apellido, email, password
FROM usuarios
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUsuario(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Usuario{}, domain.ErrUsuarioNotFound()
		}
		return domain.Usuario{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ur), nil
}

func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.Usuario{}, domain.ErrUsuarioNotFound()
	}

	const q = `
SELECT id, nombre, apellido, email, password
FROM usuarios
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUsuario(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Usuario{}, domain.ErrUsuarioNotFound()
		}
		return domain.Usuario{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ur), nil
}

// Save inserts when the identifier is zero and upserts by identifier
// otherwise, matching the legacy save semantics.
func (r *UsuarioRepo) Save(ctx context.Context, u domain.Usuario) (domain.Usuario, error) {
	u.Email = normalizeEmail(u.Email)

	if u.ID == 0 {
		const q = `
INSERT INTO usuarios (nombre, apellido, email, password)
VALUES ($1, $2, $3, $4)
RETURNING id, nombre, apellido, email, password;
`
		ur, err := scanUsuario(r.db.QueryRowContext(ctx, q, u.Nombre, u.Apellido, u.Email, u.Password))
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Usuario{}, domain.ErrCorreoRegistrado()
			}
			return domain.Usuario{}, domain.ErrDBUnavailable(err)
		}
		return toDomain(ur), nil
	}

	const q = `
INSERT INTO usuarios (id, nombre, apellido, email, password)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET nombre = EXCLUDED.nombre,
    apellido = EXCLUDED.apellido,
    email = EXCLUDED.email,
    password = EXCLUDED.password
RETURNING id, nombre, apellido, email, password;
`
	ur, err := scanUsuario(r.db.QueryRowContext(ctx, q, u.ID, u.Nombre, u.Apellido, u.Email, u.Password))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Usuario{}, domain.ErrCorreoRegistrado()
		}
		return domain.Usuario{}, domain.ErrDBUnavailable(err)
	}
	return toDomain(ur), nil
}

func (r *UsuarioRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM usuarios WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	return n > 0, nil
}
