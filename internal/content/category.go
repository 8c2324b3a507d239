package content

import "strings"

// categoryRule связывает ключевые слова в имени файла с категорией.
// Правила проверяются по порядку, срабатывает первое совпадение
type categoryRule struct {
	keywords    []string
	category    string
	subcategory string
}

var categoryRules = []categoryRule{
	{
		keywords:    []string{"riftbound", "pokemon", "magic", "onepiece", "tcg", "deck", "mtg", "yugioh", "lorcana"},
		category:    "blog",
		subcategory: "tcg",
	},
	{
		keywords:    []string{"nextjs", "react", "typescript", "prisma", "stripe", "api", "docker", "node", "deploy", "ci-cd", "ai-", "server-components"},
		category:    "blog",
		subcategory: "tech",
	},
	{
		keywords:    []string{"blog", "post"},
		category:    "blog",
		subcategory: "tech",
	},
	{
		keywords:    []string{"job", "resume"},
		category:    "job-search",
		subcategory: "general",
	},
	{
		keywords:    []string{"linkedin"},
		category:    "content",
		subcategory: "linkedin",
	},
	{
		keywords:    []string{"style"},
		category:    "reference",
		subcategory: "style-guide",
	},
}

// InferCategory угадывает категорию по имени файла черновика
func InferCategory(filename string) (category, subcategory string) {
	lower := strings.ToLower(filename)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category, rule.subcategory
			}
		}
	}
	return "general", "general"
}
