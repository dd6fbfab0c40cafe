package dataset

import "github.com/hscells/covlearn/category"

// Fold visits the categories in manifest order and threads the label through them. The first
// category is labelled 1 and every following category one more than the one before, whether or
// not the previous category produced any samples. collect receives the labelled category and
// gathers its samples.
func Fold(categories []category.Category, collect func(c category.Category) Group) []Group {
	groups := make([]Group, 0, len(categories))
	label := 1
	for _, c := range categories {
		c.Label = label
		groups = append(groups, collect(c))
		label++
	}
	return groups
}

// Assign returns a copy of categories with their labels set.
func Assign(categories []category.Category) []category.Category {
	groups := Fold(categories, func(c category.Category) Group {
		return Group{Category: c}
	})
	labelled := make([]category.Category, len(groups))
	for i, g := range groups {
		labelled[i] = g.Category
	}
	return labelled
}
