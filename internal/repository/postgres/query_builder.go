package postgres

import (
	"fmt"
	"strings"

	"stylefeed-backend/internal/domain"
)

// productColumns is the flattened projection every listing endpoint shares.
const productColumns = `p.id, p.name, p.description, p.price, p.discounted_price, p.image_url,
	p.color, p.size, p.material, p.product_url, p.click_count, p.is_editors_pick,
	b.name AS brand_name, c.name AS category_name, c.gender AS category_gender,
	s.name AS subcategory_name, p.category_id, p.added_at`

const productJoins = ` FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN subcategories s ON s.id = p.subcategory_id`

// productQueryBuilder accumulates WHERE predicates with positional args.
// All predicates are ANDed; building is pure so it can be unit tested
// without a database.
type productQueryBuilder struct {
	conds []string
	args  []any
}

func (b *productQueryBuilder) add(format string, vals ...any) {
	placeholders := make([]any, len(vals))
	for i, v := range vals {
		b.args = append(b.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conds = append(b.conds, fmt.Sprintf(format, placeholders...))
}

func (b *productQueryBuilder) applyFilter(f domain.ProductFilter) {
	if f.Gender != nil {
		switch *f.Gender {
		case domain.GenderUnisex:
			b.conds = append(b.conds, "(c.gender IS NULL OR c.gender = '' OR c.gender = 'Unisex')")
		default:
			// Men and Women listings also surface unisex categories.
			b.add("(c.gender = %s OR c.gender IS NULL OR c.gender = '' OR c.gender = 'Unisex')", string(*f.Gender))
		}
	}
	if f.CategoryID != nil {
		b.add("p.category_id = %s", *f.CategoryID)
	}
	if f.SubCategoryID != nil {
		b.add("p.subcategory_id = %s", *f.SubCategoryID)
	}
	if f.BrandID != nil {
		b.add("p.brand_id = %s", *f.BrandID)
	}
	// Attribute filters are equality, not pattern matches; LOWER keeps
	// user-supplied % and _ literal.
	if f.Color != nil {
		b.add("LOWER(p.color) = LOWER(%s)", *f.Color)
	}
	if f.Size != nil {
		b.add("LOWER(p.size) = LOWER(%s)", *f.Size)
	}
	if f.Material != nil {
		b.add("LOWER(p.material) = LOWER(%s)", *f.Material)
	}
	if f.MinPrice != nil {
		b.add("p.price >= %s", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("p.price <= %s", *f.MaxPrice)
	}
	if f.OnSale != nil {
		if *f.OnSale {
			b.conds = append(b.conds, "(p.discounted_price IS NOT NULL AND p.discounted_price < p.price)")
		} else {
			b.conds = append(b.conds, "(p.discounted_price IS NULL OR p.discounted_price >= p.price)")
		}
	}
	if f.Query != nil {
		pattern := "%" + *f.Query + "%"
		b.args = append(b.args, pattern)
		n := len(b.args)
		b.conds = append(b.conds, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	if f.EditorsPick != nil {
		if *f.EditorsPick {
			b.conds = append(b.conds, "p.is_editors_pick = TRUE")
		} else {
			b.conds = append(b.conds, "p.is_editors_pick = FALSE")
		}
	}
	if f.ExcludeID != nil {
		b.add("p.id <> %s", *f.ExcludeID)
	}
	if f.AddedFrom != nil {
		b.add("p.added_at >= %s", *f.AddedFrom)
	}
	if f.AddedTo != nil {
		b.add("p.added_at <= %s", *f.AddedTo)
	}
}

func (b *productQueryBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderClause maps the canonical sort vocabulary to SQL. Every ordering ends
// with the id tie-break so identical requests page deterministically.
func orderClause(sort domain.ProductSort) string {
	dir := "DESC"
	if sort.Order == domain.SortAsc {
		dir = "ASC"
	}
	switch sort.Key {
	case domain.SortByPrice:
		if sort.Order == "" {
			dir = "ASC"
		}
		return fmt.Sprintf(" ORDER BY p.price %s, p.id ASC", dir)
	case domain.SortByPopularity:
		return fmt.Sprintf(" ORDER BY p.click_count %s, p.id ASC", dir)
	case domain.SortByNewest:
		return fmt.Sprintf(" ORDER BY p.added_at %s, p.id ASC", dir)
	default:
		return " ORDER BY p.added_at DESC, p.id ASC"
	}
}

// buildProductQuery renders the listing query. A non-positive limit skips
// pagination entirely (used by exports).
func buildProductQuery(f domain.ProductFilter, sort domain.ProductSort, limit, offset int) (string, []any) {
	b := &productQueryBuilder{}
	b.applyFilter(f)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(productJoins)
	sb.WriteString(b.whereClause())
	sb.WriteString(orderClause(sort))
	if limit > 0 {
		b.args = append(b.args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(b.args))
		b.args = append(b.args, offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(b.args))
	}
	return sb.String(), b.args
}

// buildProductCountQuery renders the matching COUNT(*) for the same filter.
func buildProductCountQuery(f domain.ProductFilter) (string, []any) {
	b := &productQueryBuilder{}
	b.applyFilter(f)

	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*)")
	sb.WriteString(productJoins)
	sb.WriteString(b.whereClause())
	return sb.String(), b.args
}
