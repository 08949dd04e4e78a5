package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"material-requisition-api-server/internal/auth"
	"material-requisition-api-server/internal/models"
	"material-requisition-api-server/internal/sheets"
	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	Client        *sheets.Client
	Cache         *store.Cache
	Logger        *zap.Logger
	JWTExpiration time.Duration
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the admin collection first, then the users collection. The
// first username+password match wins; a match in the admin collection implies
// the admin role regardless of the stored role field. Unknown username and
// wrong password are deliberately indistinguishable to the caller.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// 1. Admin collection has priority.
	user, sheetName, err := h.findAccount(ctx, models.SheetAdmins, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login is temporarily unavailable"})
		return
	}
	if user != nil {
		user.Role = "admin"
	} else {
		// 2. Fall back to the regular users collection.
		user, sheetName, err = h.findAccount(ctx, models.SheetUsers, req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login is temporarily unavailable"})
			return
		}
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// 3. Stamp the last login, fire-and-forget. Failure is logged only.
	go h.stampLastLogin(sheetName, user.ID)

	token, err := auth.GenerateJWT(user.Username, user.FullName, user.Role, user.Department, h.JWTExpiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// findAccount does a live select against one identity collection and returns
// the first record whose username and password match, or nil without error
// when there is no match.
func (h *UserHandler) findAccount(ctx context.Context, sheetName, username, password string) (*models.User, string, error) {
	rows, err := h.Client.Select(ctx, sheetName)
	if err != nil {
		return nil, "", err
	}

	for _, row := range rows {
		u, err := models.UserFromRow(row)
		if err != nil {
			h.Logger.Warn("skipping malformed account row", zap.String("sheet", sheetName), zap.Error(err))
			continue
		}
		if u.Username == username && auth.CheckPasswordHash(password, u.Password) {
			return &u, sheetName, nil
		}
	}
	return nil, "", nil
}

func (h *UserHandler) stampLastLogin(sheetName, id string) {
	err := h.Client.Update(context.Background(), sheetName, id, sheets.Row{
		"last_login": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.Logger.Warn("updating last login failed",
			zap.String("sheet", sheetName), zap.String("id", id), zap.Error(err))
	}
}

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	FullName   string `json:"full_name" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=user admin"`
	Department string `json:"department"`
}

// CreateUser creates an account in the users collection.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, existing := range h.Cache.Users() {
		if existing.Username == req.Username {
			c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
			return
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:          fmt.Sprintf("user-%s", uuid.New().String()[:8]),
		Username:    req.Username,
		Password:    hashed,
		FullName:    req.FullName,
		Role:        req.Role,
		Department:  req.Department,
		CreatedDate: time.Now(),
	}

	if err := h.Client.Insert(c.Request.Context(), models.SheetUsers, user.ToRow(true)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.Cache.LoadUsers(c.Request.Context()); err != nil {
		h.Logger.Warn("reloading users after create failed", zap.Error(err))
	}

	c.JSON(http.StatusCreated, user)
}

// GetAllUsers lists the accounts of the users collection. Password hashes
// are never serialized.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Users())
}
