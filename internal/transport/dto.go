package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceResponse struct {
	Flag    bool   `json:"flag"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type CreateUser struct {
	FullName        string `json:"fullName"        validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=8,upper,lower,digit,special"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type LoginUser struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProduct struct {
	Name        string          `json:"name"        validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Image       string          `json:"image"       validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0.01"`
	Quantity    int             `json:"quantity"    validate:"gte=0"`
	CategoryID  uuid.UUID       `json:"categoryId"  validate:"required"`
}

type UpdateProduct struct {
	ID uuid.UUID `json:"id" validate:"required"`
	CreateProduct
}

type GetProduct struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Category    *GetCategory    `json:"category,omitempty"`
}

type CreateCategory struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateCategory struct {
	ID uuid.UUID `json:"id" validate:"required"`
	CreateCategory
}

type GetCategory struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Products []GetProduct `json:"products,omitempty"`
}

type ProcessCart struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"  validate:"gte=1"`
}

type Checkout struct {
	PaymentMethodID uuid.UUID     `json:"paymentMethodId" validate:"required"`
	Carts           []ProcessCart `json:"carts"           validate:"required,dive"`
}

type CreateAchieve struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"  validate:"gte=1"`
	UserID    uuid.UUID `json:"userId"    validate:"required"`
}

type GetPaymentMethod struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SearchProductsResponse struct {
	Data []GetProduct `json:"data"`
	Meta PageMeta     `json:"meta"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}
