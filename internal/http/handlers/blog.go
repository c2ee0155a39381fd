package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	intconfig "tourops/internal/config"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

type BlogPostDTO struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Body        string `json:"body,omitempty"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
}

// GET /api/blog
func ListBlogPosts(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, slug, title, COALESCE(excerpt,''), COALESCE(author,''), COALESCE(published_at,'')
		FROM blog_posts
		ORDER BY published_at DESC, id DESC
	`)
	if err != nil {
		log.Println("ListBlogPosts query error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	out := []BlogPostDTO{}
	for rows.Next() {
		var p BlogPostDTO
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Author, &p.PublishedAt); err != nil {
			log.Println("ListBlogPosts scan error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// GET /api/blog/:slug
func GetBlogPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	var p BlogPostDTO
	err := intconfig.DB.QueryRow(`
		SELECT id, slug, title, COALESCE(excerpt,''), COALESCE(body,''), COALESCE(author,''), COALESCE(published_at,'')
		FROM blog_posts
		WHERE slug = ?
		LIMIT 1
	`, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Author, &p.PublishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to load post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": p})
}

// POST /api/admin/blog
func CreateBlogPost(c *gin.Context) {
	var req BlogPostDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		RespondError(c, http.StatusBadRequest, "title is required", nil)
		return
	}
	if strings.TrimSpace(req.Slug) == "" {
		req.Slug = utils.Slugify(req.Title)
	}
	if req.PublishedAt == "" {
		req.PublishedAt = utils.FormatDate(utils.NowUTC())
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO blog_posts (slug, title, excerpt, body, author, published_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, req.Slug, req.Title, req.Excerpt, req.Body, req.Author, req.PublishedAt)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store post", err)
		return
	}
	id, _ := res.LastInsertId()
	req.ID = id
	c.JSON(http.StatusCreated, gin.H{"post": req})
}

// PUT /api/admin/blog/:id
func UpdateBlogPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid post id", nil)
		return
	}
	var req BlogPostDTO
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := intconfig.DB.Exec(`
		UPDATE blog_posts SET title = ?, excerpt = ?, body = ?, author = ?, published_at = ?
		WHERE id = ?
	`, req.Title, req.Excerpt, req.Body, req.Author, req.PublishedAt, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// DELETE /api/admin/blog/:id
func DeleteBlogPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid post id", nil)
		return
	}
	if _, err := intconfig.DB.Exec(`DELETE FROM blog_posts WHERE id = ?`, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
