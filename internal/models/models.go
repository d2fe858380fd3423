package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Entity is anything the generic repository can store.
type Entity interface {
	GetID() uuid.UUID
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"            json:"id"`
	Name        string          `gorm:"size:100;not null"               json:"name"`
	Description string          `gorm:"size:500;not null"               json:"description"`
	Image       string          `gorm:"not null"                        json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null"     json:"price"`
	Quantity    int             `gorm:"not null;default:0"              json:"quantity"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"        json:"categoryId"`
	Category    *Category       `gorm:"constraint:OnDelete:RESTRICT;"   json:"category,omitempty"`
}

func (p Product) GetID() uuid.UUID { return p.ID }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null"    json:"name"`
	Products []Product `json:"products,omitempty"`
}

func (c Category) GetID() uuid.UUID { return c.ID }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type AppUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	FullName     string    `gorm:"not null"                   json:"fullName"`
	Email        string    `gorm:"uniqueIndex;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u AppUser) GetID() uuid.UUID { return u.ID }

func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Role   string    `gorm:"primaryKey;size:32"   json:"role"`
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"      json:"userId"`
	Token     string    `gorm:"uniqueIndex;not null"          json:"-"`
	ExpiresAt time.Time `gorm:"not null"                      json:"expiresAt"`
	Revoked   bool      `gorm:"default:false"                 json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type PaymentMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null"             json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m PaymentMethod) GetID() uuid.UUID { return m.ID }

func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Achieve is one line of a completed checkout.
type Achieve struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"       json:"productId"`
	Quantity    int       `gorm:"not null"                 json:"quantity"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedDate time.Time `gorm:"autoCreateTime"           json:"createdDate"`
}

func (Achieve) TableName() string { return "checkout_achieves" }

func (a Achieve) GetID() uuid.UUID { return a.ID }

func (a *Achieve) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
