package entity

// CartItem is a single line of an express checkout cart. Prices are decimal
// strings in the gateway format, e.g. "10.00".
type CartItem struct {
	Name        string `json:"name"`
	Number      string `json:"number,omitempty"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"qty"`
}

// Cart describes an express checkout order.
type Cart struct {
	Items              []CartItem `json:"items"`
	InvoiceId          string     `json:"invoice_id"`
	InvoiceDescription string     `json:"invoice_description"`
	Total              string     `json:"total"`
	Shipping           string     `json:"shipping,omitempty"`
	Tax                string     `json:"tax,omitempty"`
	ReturnUrl          string     `json:"return_url"`
	CancelUrl          string     `json:"cancel_url"`
	// SubscriptionDescription is used as billing agreement description of
	// recurring checkouts.
	SubscriptionDescription string `json:"subscription_desc,omitempty"`
}

// Receiver is a payee of an adaptive payment.
type Receiver struct {
	Email   string `json:"email"`
	Amount  string `json:"amount"`
	Primary bool   `json:"primary,omitempty"`
}

// PayRequest describes an adaptive Pay operation.
type PayRequest struct {
	ActionType string     `json:"action_type"` // PAY, CREATE or PAY_PRIMARY
	Receivers  []Receiver `json:"receivers"`
	Memo       string     `json:"memo,omitempty"`
	FeesPayer  string     `json:"fees_payer,omitempty"`
	ReturnUrl  string     `json:"return_url"`
	CancelUrl  string     `json:"cancel_url"`
	TrackingId string     `json:"tracking_id,omitempty"`
}
