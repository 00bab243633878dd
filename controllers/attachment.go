package controllers

import (
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/iPelino/ur-missions/config"
	"github.com/iPelino/ur-missions/models"
	"github.com/iPelino/ur-missions/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func uploadRoot() string {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	return filepath.Join(root, "mission_attachments")
}

// storeAttachmentFile saves an uploaded file under a uuid name and returns
// the draft record pointing at it.
func storeAttachmentFile(c *gin.Context, file *multipart.FileHeader) (*services.AttachmentDraft, error) {
	if err := os.MkdirAll(uploadRoot(), os.ModePerm); err != nil {
		return nil, err
	}

	ext := filepath.Ext(file.Filename)
	storedPath := filepath.Join(uploadRoot(), uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		return nil, err
	}

	return &services.AttachmentDraft{
		OriginalFilename: file.Filename,
		StoredFilename:   storedPath,
		FileType:         file.Header.Get("Content-Type"),
	}, nil
}

// discardStoredAttachments removes files stored for a request that failed
// before its records committed.
func discardStoredAttachments(drafts []services.AttachmentDraft) {
	for _, draft := range drafts {
		if err := os.Remove(draft.StoredFilename); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove orphaned attachment %s: %v", draft.StoredFilename, err)
		}
	}
}

// UploadMissionAttachment adds a file to an existing mission order.
func UploadMissionAttachment(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"file": "A file is required."})
		return
	}

	draft, err := storeAttachmentFile(c, file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	attachment := models.MissionAttachment{
		MissionOrderID:   order.MissionOrderID,
		OriginalFilename: draft.OriginalFilename,
		StoredFilename:   draft.StoredFilename,
		FileType:         draft.FileType,
	}
	if err := config.DB.Create(&attachment).Error; err != nil {
		discardStoredAttachments([]services.AttachmentDraft{*draft})
		respondError(c, http.StatusInternalServerError, nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attachment": attachment})
}

// GetMissionAttachments lists the attachments of a mission order.
func GetMissionAttachments(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	var attachments []models.MissionAttachment
	if err := config.DB.Where("mission_order_id = ?", order.MissionOrderID).
		Order("attachment_id ASC").Find(&attachments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": attachments, "total": len(attachments)})
}

// DownloadMissionAttachment streams one stored attachment file.
func DownloadMissionAttachment(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	attachmentID, err := strconv.Atoi(c.Param("attachment_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"attachment_id": "Invalid attachment ID."})
		return
	}

	var attachment models.MissionAttachment
	if err := config.DB.
		Where("attachment_id = ? AND mission_order_id = ?", attachmentID, order.MissionOrderID).
		First(&attachment).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	if _, err := os.Stat(attachment.StoredFilename); err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	c.FileAttachment(attachment.StoredFilename, attachment.OriginalFilename)
}

// DeleteMissionAttachment removes an attachment record and its stored file.
func DeleteMissionAttachment(c *gin.Context) {
	order, ok := loadOrderForCaller(c)
	if !ok {
		return
	}

	attachmentID, err := strconv.Atoi(c.Param("attachment_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, map[string]string{"attachment_id": "Invalid attachment ID."})
		return
	}

	var attachment models.MissionAttachment
	if err := config.DB.
		Where("attachment_id = ? AND mission_order_id = ?", attachmentID, order.MissionOrderID).
		First(&attachment).Error; err != nil {
		respondError(c, http.StatusNotFound, nil)
		return
	}

	if err := config.DB.Delete(&attachment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, nil)
		return
	}
	if err := os.Remove(attachment.StoredFilename); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove attachment file %s: %v", attachment.StoredFilename, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
