package entities

import "time"

// FinanceData is the server-computed earnings/COD dashboard for the signed-in
// courier. Read-only on the client.
type FinanceData struct {
	CurrentStatus   FinanceStatus
	Statistics      FinanceStatistics
	CODOrders       []FinanceOrder
	DeliveredOrders []FinanceOrder
	MoneyTransfers  []MoneyTransfer
}

type FinanceStatus struct {
	AvailableBalance float64
	TotalEarned      float64
	CollectedCOD     float64
	PendingEarnings  float64
}

type FinanceStatistics struct {
	TotalDeliveries         int
	SuccessfulDeliveries    int
	CODOrdersCount          int
	TotalCODAmount          float64
	TotalEarningsFromOrders float64
	TotalTransferred        float64
}

type FinanceOrder struct {
	ID            int64
	OrderCode     string
	CustomerName  string
	TotalPrice    float64
	PaymentMethod PaymentMethod
	DeliveredAt   *time.Time
}

type MoneyTransfer struct {
	ID        int64
	Amount    float64
	Status    string
	CreatedAt time.Time
}

// OrderStats is the per-month performance summary for the courier.
type OrderStats struct {
	TotalOrders     int
	Delivered       int
	Cancelled       int
	Delayed         int
	TotalEarnings   float64
	AvgDeliveryTime string
	SuccessRate     float64
	CurrentStreak   int
	Month           string
}
