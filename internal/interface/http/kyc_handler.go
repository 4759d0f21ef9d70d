package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
	"github.com/oksasatya/ornakala-backend/pkg/response"
	"github.com/oksasatya/ornakala-backend/pkg/validation"
)

const (
	dateLayout      = "2006-01-02"
	maxDocumentSize = 10 << 20
)

type KYCHandler struct {
	Svc    *application.KYCService
	Logger *logrus.Logger
}

func NewKYCHandler(svc *application.KYCService, logger *logrus.Logger) *KYCHandler {
	return &KYCHandler{Svc: svc, Logger: logger}
}

type createKYCRequest struct {
	LegalName      string `json:"legal_name" binding:"required,max=255"`
	DocumentType   string `json:"document_type" binding:"required,oneof=passport national_id driver_license"`
	DocumentNumber string `json:"document_number" binding:"required,docnumber"`
	DOB            string `json:"dob" binding:"required,datetime=2006-01-02"`
	Address        string `json:"address" binding:"omitempty,max=500"`
	Country        string `json:"country" binding:"required,country"`
}

type updateKYCRequest struct {
	LegalName      *string `json:"legal_name" binding:"omitempty,max=255"`
	DocumentType   *string `json:"document_type" binding:"omitempty,oneof=passport national_id driver_license"`
	DocumentNumber *string `json:"document_number" binding:"omitempty,docnumber"`
	DOB            *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Address        *string `json:"address" binding:"omitempty,max=500"`
	Country        *string `json:"country" binding:"omitempty,country"`
}

func (h *KYCHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "kyc_get", application.ErrUnauthenticated)
		return
	}
	k, err := h.Svc.Get(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, h.Logger, "kyc_get", err)
		return
	}
	response.Success(c, http.StatusOK, toKYCResponse(k), "kyc record", nil)
}

func (h *KYCHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "kyc_create", application.ErrUnauthenticated)
		return
	}
	var req createKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dob, _ := time.Parse(dateLayout, req.DOB)
	k, err := h.Svc.Create(c.Request.Context(), u, application.CreateKYCInput{
		LegalName:      req.LegalName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		DOB:            dob,
		Address:        req.Address,
		Country:        req.Country,
	})
	if err != nil {
		writeError(c, h.Logger, "kyc_create", err)
		return
	}
	response.Success(c, http.StatusCreated, toKYCResponse(k), "kyc submitted", nil)
}

func (h *KYCHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "kyc_update", application.ErrUnauthenticated)
		return
	}
	var req updateKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateKYCInput{
		LegalName:      req.LegalName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
		Country:        req.Country,
	}
	if req.DOB != nil {
		dob, _ := time.Parse(dateLayout, *req.DOB)
		in.DOB = &dob
	}
	k, err := h.Svc.Update(c.Request.Context(), u.ID, in)
	if err != nil {
		writeError(c, h.Logger, "kyc_update", err)
		return
	}
	response.Success(c, http.StatusOK, toKYCResponse(k), "kyc updated", nil)
}

func (h *KYCHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "kyc_delete", application.ErrUnauthenticated)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), u.ID); err != nil {
		writeError(c, h.Logger, "kyc_delete", err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "kyc deleted", nil)
}

// UploadDocument POST /api/kyc/document (multipart field "file")
func (h *KYCHandler) UploadDocument(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		writeError(c, h.Logger, "kyc_upload", application.ErrUnauthenticated)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", gin.H{"file": "is required"})
		return
	}
	if fh.Size > maxDocumentSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", gin.H{"file": "max 10MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, "kyc_upload", err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	k, err := h.Svc.UploadDocument(c.Request.Context(), u.ID, f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, "kyc_upload", err)
		return
	}
	response.Success(c, http.StatusOK, toKYCResponse(k), "document uploaded", nil)
}
