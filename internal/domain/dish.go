package domain

// Dish is a catalog entry: name, ordered ingredient list, price in hryvnia.
// The catalog itself is read-only at runtime; orders hold independent copies.
type Dish struct {
	Name        string
	Ingredients []string
	Price       int64
}

// Clone returns a deep copy so that mutating an order line's ingredient list
// never aliases the catalog entry.
func (d Dish) Clone() Dish {
	ingredients := make([]string, len(d.Ingredients))
	copy(ingredients, d.Ingredients)
	return Dish{
		Name:        d.Name,
		Ingredients: ingredients,
		Price:       d.Price,
	}
}

// DefaultCatalog is the built-in menu, used when the config defines none.
func DefaultCatalog() []Dish {
	return []Dish{
		{Name: "Піца 'Маргарита'", Ingredients: []string{"томат", "моцарела", "базилік"}, Price: 150},
		{Name: "Суші з лососем", Ingredients: []string{"рис", "лосось", "норі"}, Price: 200},
		{Name: "Паста Карбонара", Ingredients: []string{"спагеті", "бекон", "яйця", "пармезан"}, Price: 180},
		{Name: "Салат Цезар", Ingredients: []string{"салат ромен", "курка", "пармезан", "сухарики"}, Price: 120},
	}
}
