package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

type Product struct {
	ID    int64
	Name  string
	Image string
	SKU   string
}

type OrderItem struct {
	ID            int64
	ProductID     int64
	Quantity      int
	Price         float64
	OriginalPrice float64
	IsFree        bool
	Product       Product
}

type Merchant struct {
	ID          int64
	CompanyName string
	Name        string
	Phone       string
}

// CourierRef is the assigned delivery man as embedded in an order payload.
type CourierRef struct {
	ID    int64
	Name  string
	Phone string
}

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPrepaid PaymentMethod = "PREPAID"
)

type Order struct {
	ID            int64
	OrderCode     string
	CustomerName  string
	CustomerPhone string
	Address       string
	City          string
	Note          string
	TotalPrice    float64
	PaymentMethod PaymentMethod
	Status        OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
	// DeliveredAt is set by the server only once Status is DELIVERED.
	DeliveredAt *time.Time

	Items []OrderItem

	// Merchant and DeliveryMan are only present in the detail response
	Merchant    *Merchant
	DeliveryMan *CourierRef

	Notes []DeliveryNote
}

// DeliveryAttempt is one recorded outcome of a courier acting on an order.
// Attempts are append-only server side; the client never mutates them.
type DeliveryAttempt struct {
	ID            int64
	OrderID       int64
	AttemptNumber int
	CourierID     *int64
	AttemptedAt   time.Time
	Status        OrderStatus
	Reason        string
	Notes         string
	Location      string
}

// DeliveryNote is a courier annotation on an order. Private notes are visible
// to the author only; shared notes to every courier.
type DeliveryNote struct {
	ID        int64
	OrderID   int64
	AuthorID  int64
	Content   string
	Private   bool
	CreatedAt time.Time
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoteNotFound  = errors.New("note not found")
)

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(OrderItem{})
	gob.Register(Product{})
	gob.Register(Merchant{})
	gob.Register(CourierRef{})
	gob.Register(DeliveryNote{})
}
