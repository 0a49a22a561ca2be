package education

import "time"

type Category string

const (
	CategorySaving    Category = "saving"
	CategoryInvesting Category = "investing"
	CategoryInflation Category = "inflation"
	CategoryBudgeting Category = "budgeting"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageAmharic Language = "am"
)

// Article is a piece of financial education content, available in
// English or Amharic.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Category  Category
	Language  Language
	CreatedAt time.Time
}
