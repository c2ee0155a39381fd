package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "tourops/internal/config"

	"github.com/gin-gonic/gin"
)

// Destinations and FAQs are flat content tables managed straight from the
// dashboard; no service layer in between.

type DestinationDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// GET /api/destinations
func ListDestinations(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name, COALESCE(region,''), COALESCE(description,''), COALESCE(image_url,'')
		FROM destinations
		ORDER BY name ASC
	`)
	if err != nil {
		log.Println("ListDestinations query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []DestinationDTO{}
	for rows.Next() {
		var d DestinationDTO
		if err := rows.Scan(&d.ID, &d.Name, &d.Region, &d.Description, &d.ImageURL); err != nil {
			log.Println("ListDestinations scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, d)
	}
	c.JSON(http.StatusOK, gin.H{"destinations": out})
}

// POST /api/admin/destinations
func CreateDestination(c *gin.Context) {
	var req DestinationDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO destinations (name, region, description, image_url)
		VALUES (?, ?, ?, ?)
	`, req.Name, req.Region, req.Description, req.ImageURL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store destination", err)
		return
	}
	id, _ := res.LastInsertId()
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"destination": req})
}

// PUT /api/admin/destinations/:id
func UpdateDestination(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid destination id", nil)
		return
	}
	var req DestinationDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := intconfig.DB.Exec(`
		UPDATE destinations SET name = ?, region = ?, description = ?, image_url = ?
		WHERE id = ?
	`, req.Name, req.Region, req.Description, req.ImageURL, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update destination", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /api/admin/destinations/:id
func DeleteDestination(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid destination id", nil)
		return
	}
	if _, err := intconfig.DB.Exec(`DELETE FROM destinations WHERE id = ?`, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete destination", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

type FAQDTO struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

// GET /api/faqs
func ListFAQs(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, question, answer, COALESCE(position,0)
		FROM faqs
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		log.Println("ListFAQs query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []FAQDTO{}
	for rows.Next() {
		var f FAQDTO
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Position); err != nil {
			log.Println("ListFAQs scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, f)
	}
	c.JSON(http.StatusOK, gin.H{"faqs": out})
}

// POST /api/admin/faqs
func CreateFAQ(c *gin.Context) {
	var req FAQDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		RespondError(c, http.StatusBadRequest, "question and answer are required", nil)
		return
	}
	res, err := intconfig.DB.Exec(`
		INSERT INTO faqs (question, answer, position) VALUES (?, ?, ?)
	`, req.Question, req.Answer, req.Position)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store faq", err)
		return
	}
	id, _ := res.LastInsertId()
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"faq": req})
}

// PUT /api/admin/faqs/:id
func UpdateFAQ(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid faq id", nil)
		return
	}
	var req FAQDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := intconfig.DB.Exec(`
		UPDATE faqs SET question = ?, answer = ?, position = ? WHERE id = ?
	`, req.Question, req.Answer, req.Position, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update faq", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /api/admin/faqs/:id
func DeleteFAQ(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid faq id", nil)
		return
	}
	if _, err := intconfig.DB.Exec(`DELETE FROM faqs WHERE id = ?`, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete faq", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
