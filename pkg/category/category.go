package category

// Category is a user-facing spending bucket used to tag expenses and scope
// budgets. Categories are seeded by migration and read-only through the API.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}
