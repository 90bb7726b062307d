package repository

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

const DefaultCoverImage = "https://via.placeholder.com/150x200?text=No+Cover"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:user" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Author      string    `gorm:"type:varchar(255);not null" json:"author"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Genre       string    `gorm:"type:varchar(100)" json:"genre"`
	Tags        string    `gorm:"type:varchar(255)" json:"tags"` // comma-joined
	PublishYear int       `gorm:"column:publish_year" json:"publishYear"`
	Publisher   string    `gorm:"type:varchar(255)" json:"publisher"`
	ISBN        string    `gorm:"type:varchar(32);column:isbn" json:"isbn"`
	Pages       int       `json:"pages"`
	Language    string    `gorm:"type:varchar(50);default:English" json:"language"`
	Rating      float64   `gorm:"type:decimal(2,1);default:0" json:"rating"`
	CoverImage  string    `gorm:"type:varchar(255)" json:"coverImage"`
	Stock       int       `gorm:"default:0" json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_cart_user_book" json:"userId"`
	BookID    uint      `gorm:"column:book_id;not null;uniqueIndex:idx_cart_user_book" json:"bookId"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderNumber     string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderNumber"`
	TotalAmount     float64       `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PaymentMethod   string        `gorm:"type:varchar(100);not null" json:"paymentMethod"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"paymentStatus"`
	ShippingAddress string        `gorm:"type:text" json:"shippingAddress"`
	UserID          uint          `gorm:"column:user_id;not null;index" json:"userId"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// OrderItem captures the book's price at checkout time so later price
// edits never change historical totals.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"column:order_id;not null;index" json:"orderId"`
	BookID    uint      `gorm:"column:book_id;not null;index" json:"bookId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book"`
	CreatedAt time.Time `json:"createdAt"`
}

type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Priority    string     `gorm:"type:varchar(20);not null;default:medium" json:"priority"`
	DueDate     *time.Time `gorm:"column:due_date" json:"dueDate"`
	UserID      uint       `gorm:"column:user_id;not null;index" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Poetry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Author    string    `gorm:"type:varchar(100);not null" json:"author"`
	Content   string    `gorm:"type:text" json:"content"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	Tags      string    `gorm:"type:varchar(255)" json:"tags"` // comma-joined
	UserID    uint      `gorm:"column:user_id;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Poetry) TableName() string { return "poems" }

type Chat struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"column:sender_id;not null;index" json:"senderId"`
	ReceiverID uint      `gorm:"column:receiver_id;not null;index" json:"receiverId"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
