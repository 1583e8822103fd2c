package devserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/gastrocore/v1/common"
	"github.com/carlsburger/gastrocore/posimport"
	"github.com/carlsburger/gastrocore/utils"
)

// importEndpoint accepts POS ticket batches. The fixture matches records
// synchronously, so a stored batch goes straight to matched; duplicate
// lines are counted and dropped, never stored twice.
type importEndpoint struct {
	store *Store
}

func (e *importEndpoint) Register(g *gin.RouterGroup) {
	g.POST("/pos-imports", e.submit)
	g.POST("/pos-imports/upload", e.upload)
	g.POST("/pos-imports/search", e.search)
	g.GET("/pos-imports/:id", e.get)
}

func (e *importEndpoint) submit(c *gin.Context) {
	var req v1.ImportSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	batch, err := e.storeBatch(req.Source, req.Records)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, batch)
}

// upload takes a raw register export, parses it with the same workbook
// reader the import tooling uses, and stores it as one batch.
func (e *importEndpoint) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", "multipart field 'file' is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	defer f.Close()

	records, err := posimport.ParseWorkbook(f, file.Filename)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "parse_failed", err.Error())
		return
	}
	if len(records) == 0 {
		respondError(c, http.StatusUnprocessableEntity, "parse_failed", "no ticket lines in file")
		return
	}

	dtos := make([]v1.ImportRecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, v1.ImportRecordDTO{
			TicketNo:    r.TicketNo,
			Register:    r.Register,
			BusinessDay: common.DateOnly{Time: r.BusinessDay},
			BookedAt:    r.BookedAt,
			GrossCents:  r.GrossCents,
			NetCents:    r.NetCents,
			PaymentKind: r.PaymentKind,
		})
	}

	batch, err := e.storeBatch(file.Filename, dtos)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, batch)
}

func (e *importEndpoint) search(c *gin.Context) {
	var req v1.ImportSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	q := e.store.DB.Model(&ImportBatch{})
	if req.Status != "" {
		q = q.Where("status = ?", req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var rows []ImportBatch
	if err := q.Order("created_at desc").Limit(pageSize(req.Take)).Offset(req.Skip).Find(&rows).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	out := utils.Map(rows, batchDTO)
	c.JSON(http.StatusOK, common.SearchResponse[v1.ImportBatchDTO]{
		Data:       out,
		Pagination: common.Pagination{Total: total},
	})
}

func (e *importEndpoint) get(c *gin.Context) {
	var m ImportBatch
	if err := e.store.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "import batch")
			return
		}
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, batchDTO(m))
}

func (e *importEndpoint) storeBatch(source string, records []v1.ImportRecordDTO) (*v1.ImportBatchDTO, error) {
	days := make([]string, 0, 4)
	daySeen := make(map[string]bool)
	for _, r := range records {
		day := dayString(r.BusinessDay)
		if !daySeen[day] {
			daySeen[day] = true
			days = append(days, day)
		}
	}

	var existing []ImportRecord
	if err := e.store.DB.Where("business_day IN ?", days).Find(&existing).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[recordKey(r.TicketNo, r.Register, r.BusinessDay)] = true
	}

	batch := ImportBatch{
		ID:     uuid.NewString(),
		Source: source,
		Status: v1.ImportMatched,
	}
	var rows []ImportRecord
	for _, r := range records {
		day := dayString(r.BusinessDay)
		key := recordKey(r.TicketNo, r.Register, day)
		if seen[key] {
			batch.DuplicateCount++
			continue
		}
		seen[key] = true
		rows = append(rows, ImportRecord{
			ID:          uuid.NewString(),
			BatchID:     batch.ID,
			TicketNo:    r.TicketNo,
			Register:    r.Register,
			BusinessDay: day,
			BookedAt:    r.BookedAt,
			GrossCents:  r.GrossCents,
			NetCents:    r.NetCents,
			PaymentKind: r.PaymentKind,
		})
	}
	batch.RecordCount = len(rows)

	err := e.store.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return nil, err
	}

	dto := batchDTO(batch)
	return &dto, nil
}

func recordKey(ticket, register, day string) string {
	return fmt.Sprintf("%s|%s|%s", ticket, register, day)
}

func batchDTO(m ImportBatch) v1.ImportBatchDTO {
	return v1.ImportBatchDTO{
		ID:             m.ID,
		Source:         m.Source,
		Status:         m.Status,
		RecordCount:    m.RecordCount,
		DuplicateCount: m.DuplicateCount,
		CreatedAt:      m.CreatedAt,
		Error:          m.Error,
	}
}
