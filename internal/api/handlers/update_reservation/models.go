package update_reservation

// PaymentRequest HTTP request model отметки оплаты
type PaymentRequest struct {
	Received *bool `json:"received"`
}

// ReceiptRequest HTTP request model отметки отправки чека
type ReceiptRequest struct {
	Sent *bool `json:"sent"`
}
