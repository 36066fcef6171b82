package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidSortField = errors.New("invalid sort field")

// sortableArticleFields maps the public field names accepted by sortBy to
// article columns.
var sortableArticleFields = map[string]string{
	"id":         "id",
	"title":      "title",
	"content":    "content",
	"userId":     "user_id",
	"categoryId": "category_id",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

// Predicate is one conjunctive WHERE clause of an article query.
type Predicate struct {
	Field string
	SQL   string
	Args  []interface{}
}

type SortOrder struct {
	Column string
	Desc   bool
}

// ArticleQuery is the typed result of ArticleQueryBuilder. The zero value
// matches every article in store order.
type ArticleQuery struct {
	Predicates []Predicate
	Sort       *SortOrder
}

func (q ArticleQuery) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range q.Predicates {
		db = db.Where(p.SQL, p.Args...)
	}
	if q.Sort != nil {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Sort.Column},
			Desc:   q.Sort.Desc,
		})
	}
	return db
}

type ArticleQueryBuilder struct {
	query ArticleQuery
	err   error
}

func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

func (b *ArticleQueryBuilder) add(field, sql string, args ...interface{}) *ArticleQueryBuilder {
	b.query.Predicates = append(b.query.Predicates, Predicate{Field: field, SQL: sql, Args: args})
	return b
}

func (b *ArticleQueryBuilder) ID(id uint) *ArticleQueryBuilder {
	return b.add("id", "id = ?", id)
}

func (b *ArticleQueryBuilder) UserID(userID uint) *ArticleQueryBuilder {
	return b.add("userId", "user_id = ?", userID)
}

// likeEscaper makes LIKE metacharacters in user input match literally. '!'
// is the escape character since MySQL treats backslashes in literals as
// escapes.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// TitleContains matches titles containing s regardless of case. SQLite's
// LOWER folds ASCII letters only.
func (b *ArticleQueryBuilder) TitleContains(s string) *ArticleQueryBuilder {
	if s == "" {
		return b
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
	return b.add("title", "LOWER(title) LIKE ? ESCAPE '!'", pattern)
}

func (b *ArticleQueryBuilder) CategoryID(categoryID uint) *ArticleQueryBuilder {
	return b.add("categoryId", "category_id = ?", categoryID)
}

// CreatedFrom and CreatedTo are inclusive bounds on the creation timestamp.
func (b *ArticleQueryBuilder) CreatedFrom(t time.Time) *ArticleQueryBuilder {
	return b.add("createdAt", "created_at >= ?", t)
}

func (b *ArticleQueryBuilder) CreatedTo(t time.Time) *ArticleQueryBuilder {
	return b.add("createdAt", "created_at <= ?", t)
}

// SortBy orders by a single public field name. Only "desc" (any case) sorts
// descending; every other order value sorts ascending.
func (b *ArticleQueryBuilder) SortBy(field, order string) *ArticleQueryBuilder {
	column, ok := sortableArticleFields[field]
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrInvalidSortField, field)
		return b
	}
	b.query.Sort = &SortOrder{
		Column: column,
		Desc:   strings.EqualFold(order, "desc"),
	}
	return b
}

func (b *ArticleQueryBuilder) Build() (ArticleQuery, error) {
	if b.err != nil {
		return ArticleQuery{}, b.err
	}
	return b.query, nil
}
