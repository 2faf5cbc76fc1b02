package domain

type Product struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	Category    string  `db:"category"`
}

type Order struct {
	ID             int64   `db:"id"`
	CustomerName   string  `db:"customer_name"` // encrypted at rest
	CustomerPhone  string  `db:"customer_phone"` // encrypted at rest
	Subtotal       float64 `db:"subtotal"`
	DeliveryFee    float64 `db:"delivery_fee"`
	SchoolAmount   float64 `db:"school_amount"`
	SupplierAmount float64 `db:"supplier_amount"`
	CourierAmount  float64 `db:"courier_amount"`
	TotalAmount    float64 `db:"total_amount"`
	Status         string  `db:"status"`
	CreatedAt      string  `db:"created_at"`
}

type OrderItem struct {
	ID        int64   `db:"id"`
	OrderID   int64   `db:"order_id"`
	ProductID int64   `db:"product_id"`
	Quantity  int     `db:"quantity"`
	Price     float64 `db:"price"` // catalog price at validation time
}

type Admission struct {
	ID               int64  `db:"id"`
	LearnerName      string `db:"learner_name"`
	ParentName       string `db:"parent_name"`
	Phone            string `db:"phone"`
	Email            string `db:"email"`
	Grade            string `db:"grade"`
	AmountPaid       string `db:"amount_paid"`
	BirthCertificate string `db:"birth_certificate"`
	ParentIDCopy     string `db:"parent_id_copy"`
	LatestReport     string `db:"latest_report"`
	ProofOfResidence string `db:"proof_of_residence"`
	Message          string `db:"message"`
	PaymentStatus    string `db:"payment_status"`
	PaymentID        string `db:"payment_id"`
	Status           string `db:"status"`
	CreatedAt        string `db:"created_at"`
}

type Post struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	CreatedAt   string `db:"created_at"`
}

type PostMedia struct {
	ID        int64  `db:"id"`
	PostID    int64  `db:"post_id"`
	FilePath  string `db:"file_path"`
	MediaType string `db:"media_type"` // image | video
}
