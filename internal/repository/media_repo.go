package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/slide-cms-api/internal/database"
	"github.com/slide-cms-api/internal/models"
)

// mediaRepo is the concrete implementation of MediaRepository
type mediaRepo struct {
	db *database.DB
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db *database.DB) MediaRepository {
	return &mediaRepo{db: db}
}

// Create registers a media asset
func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO media (id, folder_id, name, url, mime_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		media.ID, media.FolderID, media.Name, media.URL,
		media.MimeType, media.SizeBytes, media.CreatedAt,
	)
	return err
}

// GetByID retrieves a media asset by ID
func (r *mediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	query := `SELECT id, folder_id, name, url, mime_type, size_bytes, created_at FROM media WHERE id = $1`

	var m models.Media
	var folderID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &folderID, &m.Name, &m.URL, &m.MimeType, &m.SizeBytes, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if folderID.Valid {
		m.FolderID = &folderID.String
	}
	return &m, nil
}

// List retrieves media assets, optionally scoped to a folder
func (r *mediaRepo) List(ctx context.Context, folderID *string) ([]*models.Media, error) {
	query := `SELECT id, folder_id, name, url, mime_type, size_bytes, created_at FROM media`
	var args []interface{}
	if folderID != nil {
		query += ` WHERE folder_id = $1`
		args = append(args, *folderID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		var m models.Media
		var fid sql.NullString
		if err := rows.Scan(&m.ID, &fid, &m.Name, &m.URL, &m.MimeType, &m.SizeBytes, &m.CreatedAt); err != nil {
			return nil, err
		}
		if fid.Valid {
			m.FolderID = &fid.String
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

// Delete removes a media asset. In-use checks belong to the service layer.
func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM media WHERE id = $1", id)
	return err
}

// CreateFolder creates a media folder
func (r *mediaRepo) CreateFolder(ctx context.Context, folder *models.MediaFolder) error {
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	query := `INSERT INTO media_folders (id, parent_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, folder.ID, folder.ParentID, folder.Name, folder.CreatedAt)
	return err
}

// ListFolders retrieves the full folder tree
func (r *mediaRepo) ListFolders(ctx context.Context) ([]*models.MediaFolder, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, parent_id, name, created_at FROM media_folders ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.MediaFolder
	for rows.Next() {
		var f models.MediaFolder
		var parentID sql.NullString
		if err := rows.Scan(&f.ID, &parentID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		if parentID.Valid {
			f.ParentID = &parentID.String
		}
		folders = append(folders, &f)
	}
	return folders, rows.Err()
}
