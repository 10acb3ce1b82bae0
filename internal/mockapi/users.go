package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"boutique-client/internal/domain"
	"boutique-client/internal/mockapi/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Printf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"isAdmin": user.IsAdmin,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and email are required"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "password must be at least 6 characters"})
		return
	}

	if _, err := h.store.UserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		h.logger.Printf("lookup user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}

	user := store.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Printf("create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "account created"})
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c).Identity()})
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *handlers) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user := *currentUser(c)
	if v := strings.TrimSpace(req.Name); v != "" {
		user.Name = v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "password must be at least 6 characters"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.store.SaveUser(c.Request.Context(), user); err != nil {
		h.logger.Printf("save user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		return
	}
	c.JSON(http.StatusOK, user.Identity())
}
