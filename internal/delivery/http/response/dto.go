package response

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// User is the public view of a buyer account. Credential material is
// never serialized.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser maps a user entity to its public view.
func NewUser(u *entity.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Seller is the public view of a seller account.
type Seller struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSeller maps a seller entity to its public view.
func NewSeller(s *entity.Seller) *Seller {
	if s == nil {
		return nil
	}

	return &Seller{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Zip:       s.Zip,
		Country:   s.Country,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Product is the public view of a catalog listing.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"imageUrl"`
	CategoryID  uuid.UUID `json:"categoryId"`
	SellerID    uuid.UUID `json:"sellerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProduct maps a product entity to its public view.
func NewProduct(p *entity.Product) *Product {
	if p == nil {
		return nil
	}

	return &Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProducts maps a product slice to its public view.
func NewProducts(products []*entity.Product) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		out = append(out, NewProduct(p))
	}

	return out
}

// Review is the public view of a product review.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview maps a review entity to its public view.
func NewReview(r *entity.Review) *Review {
	if r == nil {
		return nil
	}

	return &Review{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// NewReviews maps a review slice to its public view.
func NewReviews(reviews []*entity.Review) []*Review {
	out := make([]*Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReview(r))
	}

	return out
}

// Order is the public view of an order.
type Order struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	OrderDate   time.Time `json:"orderDate"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
}

// NewOrder maps an order entity to its public view.
func NewOrder(o *entity.Order) *Order {
	if o == nil {
		return nil
	}

	return &Order{
		ID:          o.ID,
		UserID:      o.UserID,
		OrderDate:   o.OrderDate,
		Status:      o.Status.String(),
		TotalAmount: o.TotalAmount,
	}
}

// OrderDetail is the public view of an order's purchase line.
type OrderDetail struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	SubTotal  float64   `json:"subTotal"`
}

// NewOrderDetail maps an order detail entity to its public view.
func NewOrderDetail(d *entity.OrderDetail) *OrderDetail {
	if d == nil {
		return nil
	}

	return &OrderDetail{
		ID:        d.ID,
		OrderID:   d.OrderID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		SubTotal:  d.SubTotal,
	}
}

// PurchaseRecord is the public view of a purchase history row.
type PurchaseRecord struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	OrderID     uuid.UUID `json:"orderId"`
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPurchaseRecord maps a purchase record entity to its public view.
func NewPurchaseRecord(r *entity.PurchaseRecord) *PurchaseRecord {
	if r == nil {
		return nil
	}

	return &PurchaseRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt,
	}
}

// NewPurchaseRecords maps a purchase record slice to its public view.
func NewPurchaseRecords(records []*entity.PurchaseRecord) []*PurchaseRecord {
	out := make([]*PurchaseRecord, 0, len(records))
	for _, r := range records {
		out = append(out, NewPurchaseRecord(r))
	}

	return out
}

// Purchase composes the full result of a successful buy.
type Purchase struct {
	Order          *Order          `json:"order"`
	OrderDetail    *OrderDetail    `json:"orderDetail"`
	PurchaseRecord *PurchaseRecord `json:"purchaseRecord"`
	Payment        *Payment        `json:"payment"`
}

// Payment is the public view of a gateway charge.
type Payment struct {
	ProviderID string `json:"providerId"`
	Status     string `json:"status"`
}

// NewPayment maps a gateway charge to its public view.
func NewPayment(c *service.Charge) *Payment {
	if c == nil {
		return nil
	}

	return &Payment{
		ProviderID: c.ProviderID,
		Status:     c.Status,
	}
}
