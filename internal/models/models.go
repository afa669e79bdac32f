package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

const (
	PaymentMethodCOD        = "COD"
	PaymentMethodPaypal     = "paypal"
	PaymentMethodCreditCard = "credit_card"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func ValidReviewStatus(s string) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCOD, PaymentMethodPaypal, PaymentMethodCreditCard:
		return true
	}
	return false
}

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"not null"                 json:"name"`
	Email        string     `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	Role         string     `gorm:"not null;default:user"    json:"role"`
	Phone        string     `gorm:"not null"                 json:"phone"`
	Address      string     `gorm:"not null"                 json:"address"`
	IsActive     bool       `gorm:"not null;default:true"    json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null"     json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name           string    `gorm:"not null"                     json:"name"`
	Description    string    `gorm:"not null"                     json:"description"`
	Price          float64   `gorm:"not null;check:price >= 0"    json:"price"`
	CategoryID     uint      `gorm:"index;not null"               json:"category_id"`
	Stock          int       `gorm:"not null;check:stock >= 0"    json:"stock"`
	Image          string    `json:"image"`
	SoldCount      int       `gorm:"not null;default:0"           json:"sold_count"`
	RatingsAverage float64   `gorm:"not null;default:0"           json:"ratings_average"`
	RatingsCount   int       `gorm:"not null;default:0"           json:"ratings_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Cart is one-per-user. Lookup-or-create keeps it that way; the unique
// index backs it up.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null"     json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID"        json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                     json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null"        json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null"        json:"product_id"`
	Quantity  uint `gorm:"not null;default:1;check:quantity > 0"        json:"quantity"`
}

type ShippingAddress struct {
	Street  string `gorm:"not null" json:"street"`
	City    string `gorm:"not null" json:"city"`
	State   string `gorm:"not null" json:"state"`
	ZipCode string `gorm:"not null" json:"zipCode"`
	Country string `gorm:"not null" json:"country"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"            json:"id"`
	UserID          uint            `gorm:"index;not null"                      json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"                  json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"       json:"shipping_address"`
	PaymentMethod   string          `gorm:"not null"                            json:"payment_method"`
	Status          string          `gorm:"not null;default:pending"            json:"status"`
	TotalAmount     float64         `gorm:"not null;check:total_amount >= 0"    json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a snapshot line: Price is the catalog price at the moment
// the order was placed and is never touched again.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	OrderID   uint    `gorm:"index;not null"                        json:"order_id"`
	ProductID uint    `gorm:"not null"                              json:"product_id"`
	Quantity  uint    `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	Price     float64 `gorm:"not null;check:price >= 0"             json:"price"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_product_user;not null"   json:"product_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_product_user;not null"   json:"user_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"   json:"rating"`
	Comment   string    `gorm:"not null"                                json:"comment"`
	Status    string    `gorm:"not null;default:pending"                json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All is the migration set, in FK-friendly order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Review{},
	}
}
