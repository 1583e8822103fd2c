package devserver

import (
	"time"
)

// Calendar-day columns hold venue-local dates as yyyy-MM-dd strings so the
// same schema works on sqlite and MySQL.

// Session is one staff member's attendance row for a business day.
type Session struct {
	ID          string `gorm:"primaryKey;size:36"`
	StaffID     string `gorm:"size:64;index:idx_sessions_staff_day"`
	BusinessDay string `gorm:"size:10;index:idx_sessions_staff_day"`
	State       string `gorm:"size:16"`
	ClockInAt   time.Time
	ClockOutAt  *time.Time
	Breaks      []SessionBreak `gorm:"foreignKey:SessionID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Session) TableName() string { return "sessions" }

// SessionBreak is one break interval. A row without an end time is the
// session's open break.
type SessionBreak struct {
	ID        string `gorm:"primaryKey;size:36"`
	SessionID string `gorm:"size:36;index"`
	StartAt   time.Time
	EndAt     *time.Time
}

func (SessionBreak) TableName() string { return "session_breaks" }

type Reservation struct {
	ID         string `gorm:"primaryKey;size:36"`
	GuestName  string `gorm:"size:128"`
	GuestPhone string `gorm:"size:32"`
	PartySize  int
	Date       string `gorm:"size:10;index"`
	TimeSlot   string `gorm:"size:5"`
	TableCode  string `gorm:"size:16"`
	Status     string `gorm:"size:16;index"`
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Reservation) TableName() string { return "reservations" }

type Absence struct {
	ID        string `gorm:"primaryKey;size:36"`
	StaffID   string `gorm:"size:64;index"`
	Kind      string `gorm:"size:16"`
	FromDay   string `gorm:"size:10"`
	ToDay     string `gorm:"size:10"`
	Reason    string
	Status    string `gorm:"size:16;index"`
	DecidedBy string `gorm:"size:128"`
	Decision  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Absence) TableName() string { return "absences" }

type Shift struct {
	ID        string `gorm:"primaryKey;size:36"`
	StaffID   string `gorm:"size:64;index"`
	Date      string `gorm:"size:10;index"`
	Start     string `gorm:"size:5"`
	End       string `gorm:"size:5"`
	Role      string `gorm:"size:16"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Shift) TableName() string { return "shifts" }

type Document struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:256"`
	Version     int
	PublishedAt time.Time
	RequiresAck bool
	ContentType string `gorm:"size:64"`
	Content     []byte
	CreatedAt   time.Time
}

func (Document) TableName() string { return "documents" }

// DocumentAck records that one staff member acknowledged one document
// version. Acking twice keeps the first timestamp.
type DocumentAck struct {
	ID         string `gorm:"primaryKey;size:36"`
	DocumentID string `gorm:"size:36;uniqueIndex:idx_acks_doc_staff"`
	StaffID    string `gorm:"size:64;uniqueIndex:idx_acks_doc_staff"`
	AckedAt    time.Time
}

func (DocumentAck) TableName() string { return "document_acks" }

type EventBooking struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:256"`
	ContactName  string `gorm:"size:128"`
	ContactEmail string `gorm:"size:128"`
	ContactPhone string `gorm:"size:32"`
	Date         string `gorm:"size:10;index"`
	GuestCount   int
	RoomCode     string `gorm:"size:16"`
	PackageCode  string `gorm:"size:16"`
	PriceCents   int64
	Status       string `gorm:"size:16;index"`
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (EventBooking) TableName() string { return "event_bookings" }

type ImportBatch struct {
	ID             string `gorm:"primaryKey;size:36"`
	Source         string `gorm:"size:256"`
	Status         string `gorm:"size:16;index"`
	RecordCount    int
	DuplicateCount int
	Error          string
	Records        []ImportRecord `gorm:"foreignKey:BatchID"`
	CreatedAt      time.Time
}

func (ImportBatch) TableName() string { return "import_batches" }

// ImportRecord is one stored POS ticket line. The unique index over
// ticket, register and business day is what makes resubmitted lines
// detectable as duplicates.
type ImportRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	BatchID     string `gorm:"size:36;index"`
	TicketNo    string `gorm:"size:64;uniqueIndex:idx_records_ticket"`
	Register    string `gorm:"size:64;uniqueIndex:idx_records_ticket"`
	BusinessDay string `gorm:"size:10;uniqueIndex:idx_records_ticket"`
	BookedAt    time.Time
	GrossCents  int64
	NetCents    int64
	PaymentKind string `gorm:"size:32"`
}

func (ImportRecord) TableName() string { return "import_records" }

type Backup struct {
	ID        string `gorm:"primaryKey;size:36"`
	Status    string `gorm:"size:16"`
	SizeBytes int64
	Checksum  string `gorm:"size:64"`
	Error     string
	Archive   []byte
	CreatedAt time.Time
}

func (Backup) TableName() string { return "backups" }
