package db

import (
	"database/sql"
	"fmt"

	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/validator"
)

// DocumentRow is one catalog entry as listed by the CLI.
type DocumentRow struct {
	ID          int64
	Path        string
	Title       string
	Language    string
	Scenarios   int
	DefectCount int
}

// ScenarioRow is one scenario of a cataloged document.
type ScenarioRow struct {
	Title string
	Kind  string // "scenario" or "outline"
}

// DefectRow is one recorded validation defect.
type DefectRow struct {
	Code   string
	Detail string
}

// UpsertDocument registers or refreshes a document and reports whether it
// was newly created.
func UpsertDocument(sqlDB *sql.DB, path string, f *ast.Feature) (int64, bool, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM documents WHERE file_path = ?`, path).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		res, err := sqlDB.Exec(
			`INSERT INTO documents (file_path, title, language) VALUES (?, ?, ?)`,
			path, f.Title, f.Language,
		)
		if err != nil {
			return 0, false, fmt.Errorf("inserting %s: %w", path, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("inserting %s: %w", path, err)
		}
		return id, true, nil
	case err != nil:
		return 0, false, fmt.Errorf("querying %s: %w", path, err)
	}
	_, err = sqlDB.Exec(
		`UPDATE documents SET title = ?, language = ?, updated_at = datetime('now') WHERE id = ?`,
		f.Title, f.Language, id,
	)
	if err != nil {
		return 0, false, fmt.Errorf("updating %s: %w", path, err)
	}
	return id, false, nil
}

// ReplaceScenarios rewrites the scenario list of a document from its
// current tree, rule-nested children included.
func ReplaceScenarios(sqlDB *sql.DB, docID int64, f *ast.Feature) error {
	if _, err := sqlDB.Exec(`DELETE FROM scenarios WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clearing scenarios: %w", err)
	}
	insert := func(title, kind string) error {
		_, err := sqlDB.Exec(
			`INSERT INTO scenarios (document_id, title, kind) VALUES (?, ?, ?)`,
			docID, title, kind,
		)
		return err
	}
	add := func(sc *ast.Scenario, so *ast.ScenarioOutline) error {
		if sc != nil {
			return insert(sc.Title, "scenario")
		}
		return insert(so.Title, "outline")
	}
	for _, child := range f.Children {
		switch {
		case child.Scenario != nil, child.Outline != nil:
			if err := add(child.Scenario, child.Outline); err != nil {
				return fmt.Errorf("inserting scenario: %w", err)
			}
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				if err := add(rc.Scenario, rc.Outline); err != nil {
					return fmt.Errorf("inserting scenario: %w", err)
				}
			}
		}
	}
	return nil
}

// ReplaceDefects rewrites the recorded defects of a document.
func ReplaceDefects(sqlDB *sql.DB, docID int64, defects []validator.Defect) error {
	if _, err := sqlDB.Exec(`DELETE FROM defects WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clearing defects: %w", err)
	}
	for _, d := range defects {
		_, err := sqlDB.Exec(
			`INSERT INTO defects (document_id, code, detail) VALUES (?, ?, ?)`,
			docID, string(d.Code), d.String(),
		)
		if err != nil {
			return fmt.Errorf("inserting defect: %w", err)
		}
	}
	return nil
}

// ListDocuments returns every cataloged document with scenario and defect
// counts, ordered by path.
func ListDocuments(sqlDB *sql.DB) ([]DocumentRow, error) {
	rows, err := sqlDB.Query(`
		SELECT d.id, d.file_path, d.title, d.language,
			(SELECT COUNT(*) FROM scenarios s WHERE s.document_id = d.id),
			(SELECT COUNT(*) FROM defects x WHERE x.document_id = d.id)
		FROM documents d
		ORDER BY d.file_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		if err := rows.Scan(&r.ID, &r.Path, &r.Title, &r.Language, &r.Scenarios, &r.DefectCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// GetDocument loads one document with its scenarios and defects.
func GetDocument(sqlDB *sql.DB, id int64) (DocumentRow, []ScenarioRow, []DefectRow, error) {
	var doc DocumentRow
	err := sqlDB.QueryRow(
		`SELECT id, file_path, title, language FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Path, &doc.Title, &doc.Language)
	if err != nil {
		return doc, nil, nil, fmt.Errorf("document %d not found", id)
	}

	scRows, err := sqlDB.Query(
		`SELECT title, kind FROM scenarios WHERE document_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return doc, nil, nil, fmt.Errorf("querying scenarios: %w", err)
	}
	defer scRows.Close()
	var scenarios []ScenarioRow
	for scRows.Next() {
		var s ScenarioRow
		if err := scRows.Scan(&s.Title, &s.Kind); err != nil {
			return doc, nil, nil, fmt.Errorf("scanning scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	if err := scRows.Err(); err != nil {
		return doc, nil, nil, fmt.Errorf("iterating scenarios: %w", err)
	}

	dfRows, err := sqlDB.Query(
		`SELECT code, detail FROM defects WHERE document_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return doc, nil, nil, fmt.Errorf("querying defects: %w", err)
	}
	defer dfRows.Close()
	var defects []DefectRow
	for dfRows.Next() {
		var d DefectRow
		if err := dfRows.Scan(&d.Code, &d.Detail); err != nil {
			return doc, nil, nil, fmt.Errorf("scanning defect: %w", err)
		}
		defects = append(defects, d)
	}
	if err := dfRows.Err(); err != nil {
		return doc, nil, nil, fmt.Errorf("iterating defects: %w", err)
	}

	return doc, scenarios, defects, nil
}
