package gateway

import (
	"github.com/ichaoui56/sonic-courier/internal/entities"
)

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func userToEntity(m *userModel) entities.User {
	u := entities.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Phone: m.Phone,
		Image: deref(m.Image),
		Role:  m.Role,
	}
	if dm := m.DeliveryMan; dm != nil {
		u.Courier = entities.Courier{
			ID:          dm.ID,
			City:        deref(dm.City),
			VehicleType: deref(dm.VehicleType),
			Active:      dm.Active,
			BaseFee:     deref(dm.BaseFee),
		}
	}
	return u
}

func orderToEntity(m orderModel) entities.Order {
	items := make([]entities.OrderItem, 0, len(m.OrderItems))
	for _, it := range m.OrderItems {
		items = append(items, entities.OrderItem{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			Price:         it.Price,
			OriginalPrice: it.OriginalPrice,
			IsFree:        it.IsFree,
			Product: entities.Product{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Image: deref(it.Product.Image),
				SKU:   deref(it.Product.SKU),
			},
		})
	}

	var notes []entities.DeliveryNote
	for _, n := range m.Notes {
		notes = append(notes, noteToEntity(n))
	}

	order := entities.Order{
		ID:            m.ID,
		OrderCode:     m.OrderCode,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Address:       m.Address,
		City:          m.City,
		Note:          m.Note,
		TotalPrice:    m.TotalPrice,
		PaymentMethod: entities.PaymentMethod(m.PaymentMethod),
		Status:        entities.OrderStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeliveredAt:   m.DeliveredAt,
		Items:         items,
		Notes:         notes,
	}

	if m.Merchant != nil {
		order.Merchant = &entities.Merchant{
			ID:          m.Merchant.ID,
			CompanyName: m.Merchant.CompanyName,
		}
		if m.Merchant.User != nil {
			order.Merchant.Name = m.Merchant.User.Name
			order.Merchant.Phone = m.Merchant.User.Phone
		}
	}

	if m.DeliveryMan != nil {
		order.DeliveryMan = &entities.CourierRef{ID: m.DeliveryMan.ID}
		if m.DeliveryMan.User != nil {
			order.DeliveryMan.Name = m.DeliveryMan.User.Name
			order.DeliveryMan.Phone = m.DeliveryMan.User.Phone
		}
	}

	return order
}

func ordersToEntities(models []orderModel) []entities.Order {
	orders := make([]entities.Order, 0, len(models))
	for _, m := range models {
		orders = append(orders, orderToEntity(m))
	}
	return orders
}

func stubToEntity(m *orderStubModel) entities.Order {
	return entities.Order{
		ID:        m.ID,
		OrderCode: m.OrderCode,
		Status:    entities.OrderStatus(m.Status),
	}
}

func attemptToEntity(m attemptModel) entities.DeliveryAttempt {
	return entities.DeliveryAttempt{
		ID:            m.ID,
		OrderID:       m.OrderID,
		AttemptNumber: m.AttemptNumber,
		CourierID:     m.DeliveryManID,
		AttemptedAt:   m.AttemptedAt,
		Status:        entities.OrderStatus(m.Status),
		Reason:        deref(m.Reason),
		Notes:         deref(m.Notes),
		Location:      deref(m.Location),
	}
}

func noteToEntity(m noteModel) entities.DeliveryNote {
	return entities.DeliveryNote{
		ID:        m.ID,
		OrderID:   m.OrderID,
		AuthorID:  m.DeliveryManID,
		Content:   m.Content,
		Private:   m.IsPrivate,
		CreatedAt: m.CreatedAt,
	}
}

func financeOrderToEntity(m financeOrderModel) entities.FinanceOrder {
	return entities.FinanceOrder{
		ID:            m.ID,
		OrderCode:     m.OrderCode,
		CustomerName:  m.CustomerName,
		TotalPrice:    m.TotalPrice,
		PaymentMethod: entities.PaymentMethod(m.PaymentMethod),
		DeliveredAt:   m.DeliveredAt,
	}
}

func financeToEntity(m financeResponse) entities.FinanceData {
	cod := make([]entities.FinanceOrder, 0, len(m.CODOrders))
	for _, o := range m.CODOrders {
		cod = append(cod, financeOrderToEntity(o))
	}
	delivered := make([]entities.FinanceOrder, 0, len(m.DeliveredOrders))
	for _, o := range m.DeliveredOrders {
		delivered = append(delivered, financeOrderToEntity(o))
	}
	transfers := make([]entities.MoneyTransfer, 0, len(m.MoneyTransfers))
	for _, tr := range m.MoneyTransfers {
		transfers = append(transfers, entities.MoneyTransfer{
			ID:        tr.ID,
			Amount:    tr.Amount,
			Status:    tr.Status,
			CreatedAt: tr.CreatedAt,
		})
	}

	return entities.FinanceData{
		CurrentStatus: entities.FinanceStatus{
			AvailableBalance: m.CurrentStatus.AvailableBalance,
			TotalEarned:      m.CurrentStatus.TotalEarned,
			CollectedCOD:     m.CurrentStatus.CollectedCOD,
			PendingEarnings:  m.CurrentStatus.PendingEarnings,
		},
		Statistics: entities.FinanceStatistics{
			TotalDeliveries:         m.Statistics.TotalDeliveries,
			SuccessfulDeliveries:    m.Statistics.SuccessfulDeliveries,
			CODOrdersCount:          m.Statistics.CODOrdersCount,
			TotalCODAmount:          m.Statistics.TotalCODAmount,
			TotalEarningsFromOrders: m.Statistics.TotalEarningsFromOrders,
			TotalTransferred:        m.Statistics.TotalTransferred,
		},
		CODOrders:       cod,
		DeliveredOrders: delivered,
		MoneyTransfers:  transfers,
	}
}

func statsToEntity(m *statsModel) entities.OrderStats {
	return entities.OrderStats{
		TotalOrders:     m.TotalOrders,
		Delivered:       m.Delivered,
		Cancelled:       m.Cancelled,
		Delayed:         m.Reported,
		TotalEarnings:   m.TotalEarnings,
		AvgDeliveryTime: m.AvgDeliveryTime,
		SuccessRate:     m.SuccessRate,
		CurrentStreak:   m.CurrentStreak,
		Month:           m.Month,
	}
}
