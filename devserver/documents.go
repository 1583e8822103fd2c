package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
)

type documentEndpoint struct {
	store *Store
	now   func() time.Time
}

func (e *documentEndpoint) Register(g *gin.RouterGroup) {
	g.GET("/documents", e.list)
	g.POST("/documents/:id/ack", e.acknowledge)
	g.GET("/documents/:id/file", e.file)
}

// list returns every document with the caller's acknowledgement timestamp
// filled in where one exists.
func (e *documentEndpoint) list(c *gin.Context) {
	var docs []Document
	if err := e.store.DB.Order("published_at desc").Find(&docs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	var acks []DocumentAck
	if err := e.store.DB.Where("staff_id = ?", staffID(c)).Find(&acks).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	ackedAt := make(map[string]time.Time, len(acks))
	for _, a := range acks {
		ackedAt[a.DocumentID] = a.AckedAt
	}

	out := make([]v1.DocumentDTO, 0, len(docs))
	for _, d := range docs {
		dto := v1.DocumentDTO{
			ID:          d.ID,
			Title:       d.Title,
			Version:     d.Version,
			PublishedAt: d.PublishedAt,
			RequiresAck: d.RequiresAck,
		}
		if at, ok := ackedAt[d.ID]; ok {
			dto.AcknowledgedAt = &at
		}
		out = append(out, dto)
	}
	respondData(c, http.StatusOK, out)
}

// acknowledge is idempotent: a second ack keeps the first timestamp.
func (e *documentEndpoint) acknowledge(c *gin.Context) {
	doc, ok := e.load(c)
	if !ok {
		return
	}

	var existing DocumentAck
	err := e.store.DB.Where("document_id = ? AND staff_id = ?", doc.ID, staffID(c)).First(&existing).Error
	if err == nil {
		respondData(c, http.StatusOK, nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	ack := DocumentAck{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		StaffID:    staffID(c),
		AckedAt:    e.now(),
	}
	if err := e.store.DB.Create(&ack).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	respondData(c, http.StatusOK, nil)
}

func (e *documentEndpoint) file(c *gin.Context) {
	doc, ok := e.load(c)
	if !ok {
		return
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, doc.Content)
}

func (e *documentEndpoint) load(c *gin.Context) (Document, bool) {
	var doc Document
	if err := e.store.DB.First(&doc, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "document")
		} else {
			respondError(c, http.StatusInternalServerError, "internal", err.Error())
		}
		return Document{}, false
	}
	return doc, true
}
