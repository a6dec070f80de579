package controller

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/media"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Media provides the upload handler backing image blocks.
type Media struct {
	MediaRepo *media.Repository
	UploadDir string
}

// Register registers the media routes
func (m *Media) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/upload", m.upload)
}

func (m *Media) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "The uploaded file is too big.", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading the file", http.StatusInternalServerError)
		return
	}
	hash := sha256.Sum256(fileBytes)
	uniqueFilename := fmt.Sprintf("%s-%d%s",
		hex.EncodeToString(hash[:16]),
		time.Now().Unix(),
		filepath.Ext(handler.Filename))

	dst, err := os.Create(filepath.Join(m.UploadDir, uniqueFilename))
	if err != nil {
		http.Error(w, "Error saving the file", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := dst.Write(fileBytes); err != nil {
		http.Error(w, "Error writing the file", http.StatusInternalServerError)
		return
	}

	rec := &models.Media{
		Filename:       handler.Filename,
		UniqueFilename: uniqueFilename,
		MimeType:       handler.Header.Get("Content-Type"),
		Size:           handler.Size,
	}
	if err := m.MediaRepo.Create(rec); err != nil {
		log.Printf("Error saving media to database: %v", err)
		http.Error(w, "Error saving file metadata", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": "/uploads/" + uniqueFilename})
}
