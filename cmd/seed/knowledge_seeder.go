package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/repository/implementation"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultSource = "Peter Attia MD"

// categoryKeywords maps content keywords to knowledge-base categories.
var categoryKeywords = map[string][]string{
	"cardiovascular": {"cardiovascular", "heart", "apob", "atherosclerosis"},
	"cholesterol":    {"cholesterol", "ldl", "hdl", "lipid", "statin"},
	"metabolic":      {"glucose", "insulin", "diabetes", "metabolic"},
	"hormones":       {"testosterone", "estrogen", "thyroid", "hormone"},
	"longevity":      {"longevity", "lifespan", "aging"},
}

type KnowledgeSeeder struct {
	db       *gorm.DB
	provider embedding.EmbeddingProvider
}

func NewKnowledgeSeeder(db *gorm.DB, provider embedding.EmbeddingProvider) *KnowledgeSeeder {
	return &KnowledgeSeeder{db: db, provider: provider}
}

// LoadDirectory walks a directory tree and inserts one document per markdown
// file. Files whose title already exists in the knowledge base are skipped so
// the command stays idempotent.
func (s *KnowledgeSeeder) LoadDirectory(ctx context.Context, directory string) (added, skipped int, err error) {
	repo := implementation.NewMedicalDocumentRepository(s.db)

	err = filepath.WalkDir(directory, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			color.Red("Failed to read %s: %v", path, readErr)
			skipped++
			return nil
		}

		content := string(raw)
		title := extractTitle(content, d.Name())

		existing, findErr := repo.Count(ctx, specification.Filter("title", title))
		if findErr != nil {
			return findErr
		}
		if existing > 0 {
			color.Yellow("Skipping (exists): %s", title)
			skipped++
			return nil
		}

		embedRes, embedErr := s.provider.Generate(ctx, content)
		if embedErr != nil {
			return embedErr
		}

		doc := &entity.MedicalDocument{
			Id:         uuid.New(),
			Title:      title,
			Content:    content,
			Source:     defaultSource,
			Categories: detectCategories(content),
			Embedding:  embedRes.Values,
			CreatedAt:  time.Now(),
		}

		if createErr := repo.Create(ctx, doc); createErr != nil {
			return createErr
		}

		color.Green("Added: %s", title)
		added++
		return nil
	})

	return added, skipped, err
}

// extractTitle prefers the first markdown heading, falling back to the
// filename with dashes turned into spaces.
func extractTitle(content, fileName string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
		if line != "" {
			break
		}
	}

	base := strings.TrimSuffix(fileName, ".md")
	return strings.ReplaceAll(base, "-", " ")
}

func detectCategories(content string) []string {
	lower := strings.ToLower(content)

	var categories []string
	for category, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				categories = append(categories, category)
				break
			}
		}
	}

	if len(categories) == 0 {
		categories = []string{"general"}
	}
	return categories
}
