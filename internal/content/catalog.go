package content

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

const previewLimit = 150

// Draft — черновик с диска, обогащенный состоянием ревью из БД
type Draft struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Preview     string     `json:"preview"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Status      string     `json:"status"`
	FilePath    string     `json:"file_path"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
}

type frontmatter struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
}

type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) Dir() string {
	return c.dir
}

// List читает *.md из каталога черновиков и сливает их с ревью по пути.
// Категория: БД -> frontmatter -> эвристика по имени файла
func (c *Catalog) List(reviews []model.ContentReview) ([]Draft, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]model.ContentReview, len(reviews))
	for _, r := range reviews {
		byPath[r.FilePath] = r
	}

	drafts := make([]Draft, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(c.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		fm, body := splitFrontmatter(string(raw))

		d := Draft{
			Slug:     strings.TrimSuffix(entry.Name(), ".md"),
			Title:    extractTitle(fm, body, entry.Name()),
			Preview:  extractPreview(body),
			Status:   model.StatusPending,
			FilePath: path,
		}

		if rev, ok := byPath[path]; ok {
			d.Status = rev.Status
			d.ReviewedAt = rev.ReviewedAt
			d.Category = rev.Category
			d.Subcategory = rev.Subcategory
		}
		if d.Category == "" && fm.Category != "" {
			d.Category = fm.Category
			d.Subcategory = fm.Subcategory
		}
		if d.Category == "" {
			d.Category, d.Subcategory = InferCategory(entry.Name())
		}
		if d.Subcategory == "" {
			d.Subcategory = "general"
		}

		drafts = append(drafts, d)
	}
	return drafts, nil
}

// Read возвращает тело черновика без frontmatter
func (c *Catalog) Read(slug string) (title, body string, err error) {
	path := filepath.Join(c.dir, slug+".md")
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	fm, body := splitFrontmatter(string(raw))
	return extractTitle(fm, body, slug+".md"), body, nil
}

var headingRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// splitFrontmatter отрезает YAML-блок между "---" в начале файла.
// Невалидный YAML просто игнорируется
func splitFrontmatter(raw string) (frontmatter, string) {
	var fm frontmatter

	if !strings.HasPrefix(raw, "---\n") {
		return fm, raw
	}
	rest := raw[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, raw
	}

	yaml.Unmarshal([]byte(rest[:end]), &fm)

	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body
}

func extractTitle(fm frontmatter, body, filename string) string {
	if fm.Title != "" {
		return fm.Title
	}
	if m := headingRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSuffix(filename, ".md")
}

// extractPreview берет первый обычный абзац, без заголовков и кода
func extractPreview(body string) string {
	for _, para := range regexp.MustCompile(`\n\n+`).Split(body, -1) {
		p := strings.TrimSpace(para)
		if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "```") {
			continue
		}
		runes := []rune(p)
		if len(runes) > previewLimit {
			return string(runes[:previewLimit]) + "..."
		}
		return p
	}
	return ""
}
