package gateway

import "time"

// Wire models mirror the backend's JSON shapes. Identity fields carry
// validate tags so a malformed body fails loudly at the boundary instead of
// producing half-empty entities.

type userModel struct {
	ID          int64             `json:"id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Image       *string           `json:"image"`
	Role        string            `json:"role"`
	DeliveryMan *deliveryManModel `json:"deliveryMan"`
}

type deliveryManModel struct {
	ID          int64    `json:"id" validate:"required"`
	City        *string  `json:"city"`
	VehicleType *string  `json:"vehicleType"`
	Active      bool     `json:"active"`
	BaseFee     *float64 `json:"baseFee"`
}

type loginResponse struct {
	Token string     `json:"token" validate:"required"`
	User  *userModel `json:"user" validate:"required"`
}

type meResponse struct {
	User *userModel `json:"user" validate:"required"`
}

type userInfoModel struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email string  `json:"email"`
	Image *string `json:"image"`
}

type productModel struct {
	ID    int64   `json:"id" validate:"required"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	SKU   *string `json:"sku"`
}

type orderItemModel struct {
	ID            int64        `json:"id" validate:"required"`
	OrderID       int64        `json:"orderId"`
	ProductID     int64        `json:"productId"`
	Quantity      int          `json:"quantity"`
	Price         float64      `json:"price"`
	OriginalPrice float64      `json:"originalPrice"`
	IsFree        bool         `json:"isFree"`
	Product       productModel `json:"product"`
}

type merchantModel struct {
	ID          int64          `json:"id" validate:"required"`
	CompanyName string         `json:"companyName"`
	User        *userInfoModel `json:"user"`
}

type courierRefModel struct {
	ID   int64          `json:"id" validate:"required"`
	User *userInfoModel `json:"user"`
}

type orderModel struct {
	ID            int64      `json:"id" validate:"required"`
	OrderCode     string     `json:"orderCode" validate:"required"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Note          string     `json:"note"`
	TotalPrice    float64    `json:"totalPrice"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status" validate:"required"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeliveredAt   *time.Time `json:"deliveredAt"`

	OrderItems  []orderItemModel `json:"orderItems" validate:"dive"`
	Merchant    *merchantModel   `json:"merchant"`
	DeliveryMan *courierRefModel `json:"deliveryMan"`
	Notes       []noteModel      `json:"notes" validate:"dive"`
}

type ordersResponse struct {
	Orders []orderModel `json:"orders" validate:"dive"`
}

type historyResponse struct {
	Orders     []orderModel `json:"orders" validate:"dive"`
	HasMore    bool         `json:"hasMore"`
	TotalCount int          `json:"totalCount"`
}

type orderDetailResponse struct {
	Order *orderModel `json:"order" validate:"required"`
}

// orderStubModel is the partial order echoed back by accept and status
// updates. The caller re-fetches the full order anyway.
type orderStubModel struct {
	ID            int64  `json:"id" validate:"required"`
	OrderCode     string `json:"orderCode"`
	Status        string `json:"status" validate:"required"`
	DeliveryManID int64  `json:"deliveryManId"`
	AttemptNumber int    `json:"attemptNumber"`
}

type mutationResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Order   *orderStubModel `json:"order" validate:"required"`
}

type attemptModel struct {
	ID            int64     `json:"id" validate:"required"`
	OrderID       int64     `json:"orderId"`
	AttemptNumber int       `json:"attemptNumber"`
	DeliveryManID *int64    `json:"deliveryManId"`
	AttemptedAt   time.Time `json:"attemptedAt"`
	Status        string    `json:"status"`
	Reason        *string   `json:"reason"`
	Notes         *string   `json:"notes"`
	Location      *string   `json:"location"`
}

type attemptsResponse struct {
	Attempts []attemptModel `json:"attempts" validate:"dive"`
}

type noteModel struct {
	ID            int64     `json:"id" validate:"required"`
	OrderID       int64     `json:"orderId"`
	DeliveryManID int64     `json:"deliveryManId"`
	Content       string    `json:"content"`
	IsPrivate     bool      `json:"isPrivate"`
	CreatedAt     time.Time `json:"createdAt"`
}

type notesResponse struct {
	Notes []noteModel `json:"notes" validate:"dive"`
}

type noteResponse struct {
	Note *noteModel `json:"note" validate:"required"`
}

type financeStatusModel struct {
	AvailableBalance float64 `json:"availableBalance"`
	TotalEarned      float64 `json:"totalEarned"`
	CollectedCOD     float64 `json:"collectedCOD"`
	PendingEarnings  float64 `json:"pendingEarnings"`
}

type financeStatisticsModel struct {
	TotalDeliveries         int     `json:"totalDeliveries"`
	SuccessfulDeliveries    int     `json:"successfulDeliveries"`
	CODOrdersCount          int     `json:"codOrdersCount"`
	TotalCODAmount          float64 `json:"totalCODAmount"`
	TotalEarningsFromOrders float64 `json:"totalEarningsFromOrders"`
	TotalTransferred        float64 `json:"totalTransferred"`
}

type financeOrderModel struct {
	ID            int64      `json:"id" validate:"required"`
	OrderCode     string     `json:"orderCode"`
	CustomerName  string     `json:"customerName"`
	TotalPrice    float64    `json:"totalPrice"`
	PaymentMethod string     `json:"paymentMethod"`
	DeliveredAt   *time.Time `json:"deliveredAt"`
}

type moneyTransferModel struct {
	ID        int64     `json:"id" validate:"required"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type financeResponse struct {
	CurrentStatus   financeStatusModel     `json:"currentStatus"`
	Statistics      financeStatisticsModel `json:"statistics"`
	CODOrders       []financeOrderModel    `json:"codOrders" validate:"dive"`
	DeliveredOrders []financeOrderModel    `json:"deliveredOrders" validate:"dive"`
	MoneyTransfers  []moneyTransferModel   `json:"moneyTransfers" validate:"dive"`
}

type statsModel struct {
	TotalOrders     int     `json:"totalOrders"`
	Delivered       int     `json:"delivered"`
	Cancelled       int     `json:"cancelled"`
	Reported        int     `json:"reported"`
	TotalEarnings   float64 `json:"totalEarnings"`
	AvgDeliveryTime string  `json:"avgDeliveryTime"`
	SuccessRate     float64 `json:"successRate"`
	CurrentStreak   int     `json:"currentStreak"`
	Month           string  `json:"month"`
}

type statsResponse struct {
	Stats *statsModel `json:"stats" validate:"required"`
}

// Request payloads.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusUpdateRequest struct {
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Location string `json:"location,omitempty"`
}

type noteRequest struct {
	Content   string `json:"content"`
	IsPrivate bool   `json:"isPrivate"`
}

type profileRequest struct {
	Name                string  `json:"name"`
	Phone               *string `json:"phone,omitempty"`
	VehicleType         *string `json:"vehicleType,omitempty"`
	Image               *string `json:"image,omitempty"`
	NotificationEnabled *bool   `json:"notificationEnabled,omitempty"`
}
