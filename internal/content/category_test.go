package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		filename        string
		wantCategory    string
		wantSubcategory string
	}{
		{"pokemon-deck-guide.md", "blog", "tcg"},
		{"riftbound-review.md", "blog", "tcg"},
		{"nextjs-server-components.md", "blog", "tech"},
		{"docker-deploy-notes.md", "blog", "tech"},
		{"my-blog-thoughts.md", "blog", "tech"},
		{"job-application-draft.md", "job-search", "general"},
		{"resume-2025.md", "job-search", "general"},
		{"linkedin-announcement.md", "content", "linkedin"},
		{"style-guide.md", "reference", "style-guide"},
		{"random-musings.md", "general", "general"},
		{"POKEMON-CAPS.md", "blog", "tcg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			cat, sub := InferCategory(tt.filename)
			assert.Equal(t, tt.wantCategory, cat)
			assert.Equal(t, tt.wantSubcategory, sub)
		})
	}
}

func TestInferCategory_FirstMatchWins(t *testing.T) {
	// Имя попадает и под tcg, и под job — побеждает более раннее правило
	cat, sub := InferCategory("pokemon-job-post.md")
	assert.Equal(t, "blog", cat)
	assert.Equal(t, "tcg", sub)
}
