package devserver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/utils"
)

// snapshot is the dump format served as a backup archive: every fixture
// table except the backups themselves.
type snapshot struct {
	Sessions      []Session      `json:"sessions"`
	SessionBreaks []SessionBreak `json:"session_breaks"`
	Reservations  []Reservation  `json:"reservations"`
	Absences      []Absence      `json:"absences"`
	Shifts        []Shift        `json:"shifts"`
	Documents     []Document     `json:"documents"`
	DocumentAcks  []DocumentAck  `json:"document_acks"`
	EventBookings []EventBooking `json:"event_bookings"`
	ImportBatches []ImportBatch  `json:"import_batches"`
	ImportRecords []ImportRecord `json:"import_records"`
}

// backupEndpoint assembles snapshots synchronously, so a created backup is
// ready as soon as the client polls for it.
type backupEndpoint struct {
	store *Store
}

func (e *backupEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/backups", e.create)
	g.GET("/backups", e.list)
	g.GET("/backups/:id", e.get)
	g.GET("/backups/:id/archive", e.archive)
	g.POST("/backups/restore", e.restore)
}

func (e *backupEndpoint) create(c *gin.Context) {
	var snap snapshot
	if err := e.dump(&snap); err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	body, err := json.Marshal(snap)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	sum := sha256.Sum256(body)

	m := Backup{
		ID:        uuid.NewString(),
		Status:    v1.BackupReady,
		SizeBytes: int64(len(body)),
		Checksum:  hex.EncodeToString(sum[:]),
		Archive:   body,
	}
	if err := e.store.DB.Create(&m).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, backupDTO(m))
}

func (e *backupEndpoint) list(c *gin.Context) {
	var rows []Backup
	err := e.store.DB.
		Select("id, status, size_bytes, checksum, error, created_at").
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, backupDTO)
	respondData(c, http.StatusOK, out)
}

func (e *backupEndpoint) get(c *gin.Context) {
	m, ok := e.load(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, backupDTO(m))
}

func (e *backupEndpoint) archive(c *gin.Context) {
	m, ok := e.load(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/json", m.Archive)
}

// restore replaces the fixture's contents with an uploaded snapshot.
func (e *backupEndpoint) restore(c *gin.Context) {
	file, err := c.FormFile("archive")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", "multipart field 'archive' is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	var snap snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "parse_failed", "not a snapshot archive: "+err.Error())
		return
	}

	err = e.store.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{
			"sessions", "session_breaks", "reservations", "absences", "shifts",
			"documents", "document_acks", "event_bookings", "import_batches", "import_records",
		} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		for _, insert := range []func() error{
			func() error { return insertAll(tx, snap.Sessions) },
			func() error { return insertAll(tx, snap.SessionBreaks) },
			func() error { return insertAll(tx, snap.Reservations) },
			func() error { return insertAll(tx, snap.Absences) },
			func() error { return insertAll(tx, snap.Shifts) },
			func() error { return insertAll(tx, snap.Documents) },
			func() error { return insertAll(tx, snap.DocumentAcks) },
			func() error { return insertAll(tx, snap.EventBookings) },
			func() error { return insertAll(tx, snap.ImportBatches) },
			func() error { return insertAll(tx, snap.ImportRecords) },
		} {
			if err := insert(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, nil)
}

func insertAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}

func (e *backupEndpoint) dump(snap *snapshot) error {
	db := e.store.DB
	if err := db.Find(&snap.Sessions).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.SessionBreaks).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.Reservations).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.Absences).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.Shifts).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.Documents).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.DocumentAcks).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.EventBookings).Error; err != nil {
		return err
	}
	if err := db.Find(&snap.ImportBatches).Error; err != nil {
		return err
	}
	return db.Find(&snap.ImportRecords).Error
}

func (e *backupEndpoint) load(c *gin.Context) (Backup, bool) {
	var m Backup
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "backup")
		} else {
			respondError(c, http.StatusInternalServerError, "internal", err.Error())
		}
		return Backup{}, false
	}
	return m, true
}

func backupDTO(m Backup) v1.BackupDTO {
	return v1.BackupDTO{
		ID:        m.ID,
		Status:    m.Status,
		SizeBytes: m.SizeBytes,
		Checksum:  m.Checksum,
		CreatedAt: m.CreatedAt,
		Error:     m.Error,
	}
}
