package database

import (
	"database/sql"
	"fmt"

	"deploy-dashboard/internal/logger"
	"deploy-dashboard/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	slug TEXT PRIMARY KEY,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deploys (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_slug TEXT NOT NULL REFERENCES projects(slug),
	version TEXT NOT NULL,
	environment TEXT NOT NULL DEFAULT '',
	date_finished TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (project_slug, version)
);`

// InitDB opens the sqlite database at path and creates the schema.
func InitDB(path string) (*sql.DB, error) {
	log := logger.WithModule("database").WithField("path", path)
	log.Info("Initializing database connection")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	log.Info("Database tables initialized")

	return db, nil
}

// RecordDeploy stores a deploy for a project, creating the project if
// needed. A version already recorded for the project is overwritten.
func RecordDeploy(db *sql.DB, projectSlug string, deploy models.Deploy) error {
	log := logger.WithModule("database")
	log.WithField("project", projectSlug).WithField("version", deploy.Version).Debug("Recording deploy")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT OR IGNORE INTO projects (slug) VALUES (?)", projectSlug); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	var finished interface{}
	if deploy.DateFinished != "" {
		finished = deploy.DateFinished
	}

	_, err = tx.Exec(`
		INSERT INTO deploys (project_slug, version, environment, date_finished)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (project_slug, version) DO UPDATE SET
			environment = excluded.environment,
			date_finished = excluded.date_finished,
			updated_at = CURRENT_TIMESTAMP`,
		projectSlug, deploy.Version, deploy.Environment, finished)
	if err != nil {
		return fmt.Errorf("failed to insert deploy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deploy: %w", err)
	}
	return nil
}

// GetProject loads a project snapshot with its full deploy history.
// It returns sql.ErrNoRows when the project is unknown.
func GetProject(db *sql.DB, slug string) (models.Project, error) {
	var project models.Project
	if err := db.QueryRow("SELECT slug FROM projects WHERE slug = ?", slug).Scan(&project.Slug); err != nil {
		return models.Project{}, err
	}

	rows, err := db.Query(
		"SELECT version, environment, date_finished FROM deploys WHERE project_slug = ? ORDER BY id",
		slug)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to query deploys: %w", err)
	}
	defer rows.Close()

	project.LatestDeploys = []models.Deploy{}
	for rows.Next() {
		var d models.Deploy
		var finished sql.NullString
		if err := rows.Scan(&d.Version, &d.Environment, &finished); err != nil {
			return models.Project{}, fmt.Errorf("failed to scan deploy: %w", err)
		}
		d.DateFinished = finished.String
		project.LatestDeploys = append(project.LatestDeploys, d)
	}
	if err := rows.Err(); err != nil {
		return models.Project{}, fmt.Errorf("failed to read deploys: %w", err)
	}

	return project, nil
}
