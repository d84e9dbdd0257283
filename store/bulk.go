package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/ticked-app/ticked/models"
)

// BulkAddRequest describes a folder ingestion run. Exactly one of Template or
// TemplateFilePath must be set; the handler layer enforces the exclusivity.
type BulkAddRequest struct {
	FolderPath       string
	Template         string
	TemplateFilePath string
}

// BulkAddResult reports the outcome of a folder ingestion run. Skipped paths
// were already tracked by an existing todo and are not per-item errors.
type BulkAddResult struct {
	Created      []models.Todo
	SkippedPaths []string
}

// BulkAdd creates one todo per regular file found under the request folder.
//
// The walk is recursive with no depth bound and does not follow symlinks.
// Files whose path is already referenced by an existing todo are skipped and
// reported in the result. Inserts are independent single-row statements, not
// one transaction: an insert failure mid-run leaves the rows created so far
// committed, and the partial result is returned alongside the error.
func (s *SQLiteStore) BulkAdd(req BulkAddRequest) (BulkAddResult, error) {
	var result BulkAddResult

	info, err := s.fs.Stat(req.FolderPath)
	if err != nil {
		if os.IsNotExist(err) {
			return result, fmt.Errorf("folder not found: %s", req.FolderPath)
		}
		return result, fmt.Errorf("stat folder %s: %w", req.FolderPath, err)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrNotADirectory, req.FolderPath)
	}

	template, err := s.resolveTemplate(req)
	if err != nil {
		return result, err
	}

	files, err := s.collectFiles(req.FolderPath)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, fmt.Errorf("%w: %s", ErrEmptyFolder, req.FolderPath)
	}

	tracked, err := s.trackedPaths()
	if err != nil {
		return result, err
	}

	var newFiles []string
	for _, f := range files {
		if tracked[f] {
			result.SkippedPaths = append(result.SkippedPaths, f)
			continue
		}
		newFiles = append(newFiles, f)
	}
	if len(newFiles) == 0 {
		return result, fmt.Errorf("%w: %d duplicate file(s) under %s", ErrAllDuplicates, len(result.SkippedPaths), req.FolderPath)
	}

	maxNum, err := s.maxTaskNumber()
	if err != nil {
		return result, err
	}

	now := time.Now().UTC()
	for i, path := range newFiles {
		num := maxNum + 1 + i
		fp := path
		id := uuid.New().String()
		todo := models.Todo{
			ID:          id,
			Title:       fmt.Sprintf("Task %d", num),
			Description: buildBulkDescription(num, path, template, id),
			Status:      models.StatusNew,
			CreatedAt:   now,
			UpdatedAt:   now,
			FilePath:    &fp,
			TaskNumber:  num,
		}

		if err := s.insertTodo(&todo); err != nil {
			return result, fmt.Errorf("bulk insert for %s: %w", path, err)
		}
		result.Created = append(result.Created, todo)
	}

	return result, nil
}

// resolveTemplate returns the template text for a bulk run: the inline text
// verbatim, or the trimmed-nonempty contents of the template file.
func (s *SQLiteStore) resolveTemplate(req BulkAddRequest) (string, error) {
	if req.TemplateFilePath == "" {
		return req.Template, nil
	}

	info, err := s.fs.Stat(req.TemplateFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("template file not found: %s", req.TemplateFilePath)
		}
		return "", fmt.Errorf("stat template file %s: %w", req.TemplateFilePath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("template path is not a regular file: %s", req.TemplateFilePath)
	}

	data, err := afero.ReadFile(s.fs, req.TemplateFilePath)
	if err != nil {
		return "", fmt.Errorf("read template file %s: %w", req.TemplateFilePath, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("template file is empty: %s", req.TemplateFilePath)
	}
	return string(data), nil
}

// collectFiles enumerates every regular file under folder, in walk order.
func (s *SQLiteStore) collectFiles(folder string) ([]string, error) {
	var files []string
	err := afero.Walk(s.fs, folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("read directory %s: %w", path, err)
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if !filepath.IsAbs(path) {
			abs, aerr := filepath.Abs(path)
			if aerr == nil {
				path = abs
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// trackedPaths returns the set of file paths already referenced by todos.
// The file_path column is indexed, so this is a single cheap scan.
func (s *SQLiteStore) trackedPaths() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT file_path FROM todos WHERE file_path IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query tracked paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tracked := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan tracked path: %w", err)
		}
		tracked[p] = true
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, fmt.Errorf("tracked paths: %w", err)
	}
	return tracked, nil
}

// buildBulkDescription synthesizes the markdown description for a
// folder-ingested todo: task-number header, file line, the raw template text,
// and a closing instruction naming the todo's own id.
func buildBulkDescription(num int, path, template, id string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Task %d**\n\n", num)
	fmt.Fprintf(&b, "**File:** %s\n\n", path)
	b.WriteString(template)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "When this task is complete, mark it done with todo id: %s\n", id)
	return b.String()
}
