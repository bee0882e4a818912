package valueobjects

import "fmt"

type Category string

const (
	CategoryHardware Category = "HARDWARE"
	CategorySoftware Category = "SOFTWARE"
	CategoryNetwork  Category = "NETWORK"
	CategoryAccount  Category = "ACCOUNT"
	CategoryEmail    Category = "EMAIL"
	CategoryPrinter  Category = "PRINTER"
	CategoryOther    Category = "OTHER"
)

var validCategories = map[Category]bool{
	CategoryHardware: true,
	CategorySoftware: true,
	CategoryNetwork:  true,
	CategoryAccount:  true,
	CategoryEmail:    true,
	CategoryPrinter:  true,
	CategoryOther:    true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return category, nil
}
