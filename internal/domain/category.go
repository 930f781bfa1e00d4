package domain

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// ValidCategoryType reports whether t is one of the known category types.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category classifies transactions. Color is a display attribute only.
type Category struct {
	ID        int32        `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CategoryUpdate carries the changed fields of a partial category update.
type CategoryUpdate struct {
	Name  *string
	Type  *CategoryType
	Color *string
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	CreateBatch(categories []*Category) ([]*Category, error)
	GetAllByUser(userID uuid.UUID) ([]*Category, error)
	Update(userID uuid.UUID, id int32, update *CategoryUpdate) error
	Delete(userID uuid.UUID, id int32) error
}

// DefaultCategories is the starter set seeded for a user whose first load
// finds no categories at all.
func DefaultCategories(userID uuid.UUID) []*Category {
	return []*Category{
		{UserID: userID, Name: "Salary", Type: CategoryTypeIncome, Color: "#4caf50"},
		{UserID: userID, Name: "Groceries", Type: CategoryTypeExpense, Color: "#ff9800"},
		{UserID: userID, Name: "Transport", Type: CategoryTypeExpense, Color: "#2196f3"},
		{UserID: userID, Name: "Leisure", Type: CategoryTypeExpense, Color: "#9c27b0"},
		{UserID: userID, Name: "Utilities", Type: CategoryTypeExpense, Color: "#607d8b"},
	}
}
