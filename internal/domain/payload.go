package domain

// Raw payload types mirror what the order, inventory and product services
// may return. Every field a service has been seen to use is listed; the
// resolvers in the orderview package pick among the aliases in a fixed
// priority order.

type RawAddress struct {
	IsDefault      FlexBool   `json:"is_default"`
	IsDefaultCamel FlexBool   `json:"isDefault"`
	FullName       FlexString `json:"full_name"`
	RecipientName  FlexString `json:"recipient_name"`
	Name           FlexString `json:"name"`
	StreetAddress  FlexString `json:"street_address"`
	StreetCamel    FlexString `json:"streetAddress"`
	AddressLine1   FlexString `json:"address_line1"`
	Street         FlexString `json:"street"`
	City           FlexString `json:"city"`
	District       FlexString `json:"district"`
	State          FlexString `json:"state"`
	Province       FlexString `json:"province"`
	Country        FlexString `json:"country"`
	Phone          FlexString `json:"phone"`
	PhoneNumber    FlexString `json:"phone_number"`
	ContactNumber  FlexString `json:"contact_number"`
}

// HasLocation reports whether any street/city/district/country field is set.
func (a RawAddress) HasLocation() bool {
	for _, f := range []FlexString{
		a.StreetAddress, a.StreetCamel, a.AddressLine1, a.Street,
		a.City, a.District, a.State, a.Province, a.Country,
	} {
		if f.Valid {
			return true
		}
	}
	return false
}

type RawCustomer struct {
	RawAddress

	CustomerID      FlexString   `json:"customer_id"`
	ID              FlexString   `json:"id"`
	FirstName       FlexString   `json:"first_name"`
	FirstNameCamel  FlexString   `json:"firstName"`
	LastName        FlexString   `json:"last_name"`
	LastNameCamel   FlexString   `json:"lastName"`
	Email           FlexString   `json:"email"`
	Addresses       []RawAddress `json:"addresses"`
	ShippingAddress *RawAddress  `json:"shipping_address"`
}

type RawProduct struct {
	ProductName FlexString `json:"product_name"`
	Name        FlexString `json:"name"`
	ImageURL    FlexString `json:"image_url"`
	Image       FlexString `json:"image"`
	ArtisanName FlexString `json:"artisan_name"`
}

type RawLineItem struct {
	ProductID         FlexString  `json:"product_id"`
	ProductIDCamel    FlexString  `json:"productId"`
	Quantity          FlexInt     `json:"quantity"`
	Qty               FlexInt     `json:"qty"`
	PriceAtPurchase   Amount      `json:"price_at_purchase"`
	UnitPrice         Amount      `json:"unit_price"`
	Price             Amount      `json:"price"`
	Customization     FlexString  `json:"customization"`
	CustomizationText FlexString  `json:"customization_text"`
	ProductName       FlexString  `json:"product_name"`
	Name              FlexString  `json:"name"`
	ProductImage      FlexString  `json:"product_image"`
	ImageURL          FlexString  `json:"image_url"`
	Image             FlexString  `json:"image"`
	ArtisanName       FlexString  `json:"artisan_name"`
	Artisan           FlexString  `json:"artisan"`
	Product           *RawProduct `json:"product"`
}

type RawOrder struct {
	RawAddress

	OrderID            FlexString    `json:"order_id"`
	ID                 FlexString    `json:"id"`
	OrderIDCamel       FlexString    `json:"orderId"`
	OrderDate          FlexTime      `json:"order_date"`
	OrderDateCamel     FlexTime      `json:"orderDate"`
	CreatedAt          FlexTime      `json:"created_at"`
	Status             FlexString    `json:"status"`
	OrderStatus        FlexString    `json:"order_status"`
	TotalAmount        Amount        `json:"total_amount"`
	TotalAmountCamel   Amount        `json:"totalAmount"`
	Total              Amount        `json:"total"`
	Discount           Amount        `json:"discount"`
	DiscountAmount     Amount        `json:"discount_amount"`
	PaymentMethod      FlexString    `json:"payment_method"`
	PaymentMethodCamel FlexString    `json:"paymentMethod"`
	DeliveryDate       FlexTime      `json:"delivery_date"`
	DeliveryDateCamel  FlexTime      `json:"deliveryDate"`
	DeliveredAt        FlexTime      `json:"delivered_at"`
	CancelledAt        FlexTime      `json:"cancelled_at"`
	CustomerID         FlexString    `json:"customer_id"`
	CustomerIDCamel    FlexString    `json:"customerId"`
	OrderDetails       []RawLineItem `json:"orderDetails"`
	OrderDetailsSnake  []RawLineItem `json:"order_details"`
	Items              []RawLineItem `json:"items"`
	CustomerInfo       *RawCustomer  `json:"customerInfo"`
	CustomerInfoSnake  *RawCustomer  `json:"customer_info"`
	Customer           *RawCustomer  `json:"customer"`
	Addresses          []RawAddress  `json:"addresses"`
	ShippingAddress    *RawAddress   `json:"shipping_address"`
}

// CustomerOrders is the envelope of GET /orders/customer.
type CustomerOrders struct {
	Success bool       `json:"success"`
	Orders  []RawOrder `json:"orders"`
}

// InventoryRecord is the best-effort body of GET /inventory/product/{id}.
type InventoryRecord struct {
	Success     *bool      `json:"success"`
	ProductName FlexString `json:"product_name"`
	ImageURL    FlexString `json:"image_url"`
	ArtisanName FlexString `json:"artisan_name"`
}

// ProductRecord is the best-effort body of GET /products/{id}.
type ProductRecord struct {
	ProductName FlexString `json:"product_name"`
	ImageURL    FlexString `json:"image_url"`
	ArtisanName FlexString `json:"artisan_name"`
}
