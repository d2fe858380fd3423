package transport

import "github.com/Skotchmaster/ecommerce/internal/models"

func (p CreateProduct) ToModel() models.Product {
	return models.Product{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CategoryID:  p.CategoryID,
	}
}

func (p UpdateProduct) ToModel() models.Product {
	m := p.CreateProduct.ToModel()
	m.ID = p.ID
	return m
}

func (c CreateCategory) ToModel() models.Category {
	return models.Category{Name: c.Name}
}

func (c UpdateCategory) ToModel() models.Category {
	return models.Category{ID: c.ID, Name: c.Name}
}

func (a CreateAchieve) ToModel() models.Achieve {
	return models.Achieve{ProductID: a.ProductID, Quantity: a.Quantity, UserID: a.UserID}
}

func (u CreateUser) ToModel() models.AppUser {
	return models.AppUser{FullName: u.FullName, Email: u.Email}
}

// FromProduct maps a product and, when loaded, its category without the
// category's own product list.
func FromProduct(p models.Product) GetProduct {
	out := GetProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CategoryID:  p.CategoryID,
	}
	if p.Category != nil {
		out.Category = &GetCategory{ID: p.Category.ID, Name: p.Category.Name}
	}
	return out
}

func FromProducts(items []models.Product) []GetProduct {
	out := make([]GetProduct, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCategory(c models.Category) GetCategory {
	out := GetCategory{ID: c.ID, Name: c.Name}
	if len(c.Products) > 0 {
		out.Products = make([]GetProduct, 0, len(c.Products))
		for _, p := range c.Products {
			p.Category = nil
			out.Products = append(out.Products, FromProduct(p))
		}
	}
	return out
}

func FromCategories(items []models.Category) []GetCategory {
	out := make([]GetCategory, 0, len(items))
	for _, c := range items {
		out = append(out, FromCategory(c))
	}
	return out
}

func FromPaymentMethods(items []models.PaymentMethod) []GetPaymentMethod {
	out := make([]GetPaymentMethod, 0, len(items))
	for _, m := range items {
		out = append(out, GetPaymentMethod{ID: m.ID, Name: m.Name})
	}
	return out
}
