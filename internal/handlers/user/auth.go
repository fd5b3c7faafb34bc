package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aodai_back_end/internal/apperr"
	"aodai_back_end/internal/models"
	"aodai_back_end/internal/store"
	"aodai_back_end/internal/utils"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// authPayload is the response shape shared by register, login and
// profile update: the account fields plus a fresh token.
func authPayload(u *models.User, token string) gin.H {
	return gin.H{
		"_id":       u.ID,
		"name":      u.Name,
		"avatar":    u.Avatar,
		"address":   u.Address,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"token":     token,
		"createdAt": u.CreatedAt,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid registration data"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	u := models.NewUser(input.Name, input.Email, hash, time.Now())
	if _, err := h.store.Users().InsertOne(ctx, u); err != nil {
		if store.IsDuplicateKey(err) {
			apperr.Abort(c, apperr.Duplicate("Email \""+input.Email+"\" is already registered, please try another"))
			return
		}
		apperr.Abort(c, err)
		return
	}

	token, err := utils.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	log.Printf("🆕 User registered: %s", u.Email)
	c.JSON(http.StatusCreated, authPayload(u, token))
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Email and password are required"), err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var u models.User
	err := h.store.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&u)
	if err != nil || !utils.CheckPassword(input.Password, u.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect email or password"})
		return
	}

	token, err := utils.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, authPayload(&u, token))
}

// currentUser loads the authenticated account from the token identity.
func (h *Handler) currentUser(c *gin.Context) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation("Invalid user id"), err)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var u models.User
	if err := h.store.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, apperr.Wrap(apperr.NotFound("User not found"), err)
	}
	return &u, nil
}

func (h *Handler) Profile(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       u.ID,
		"name":      u.Name,
		"avatar":    u.Avatar,
		"address":   u.Address,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"createdAt": u.CreatedAt,
	})
}

type profileInput struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// apply patches the account with the non-empty fields; the password is
// re-hashed only when a new one is supplied.
func (in profileInput) apply(u *models.User, now time.Time) error {
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Avatar != "" {
		u.Avatar = in.Avatar
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.FullName != "" {
		u.Address.FullName = in.FullName
	}
	if in.Province != "" {
		u.Address.Province = in.Province
	}
	if in.District != "" {
		u.Address.District = in.District
	}
	if in.Ward != "" {
		u.Address.Ward = in.Ward
	}
	if in.Address != "" {
		u.Address.Address = in.Address
	}
	if in.Phone != "" {
		u.Address.Phone = in.Phone
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return err
		}
		u.Password = hash
	}
	u.UpdatedAt = now
	return nil
}

// UpdateProfile applies partial changes to the authenticated account.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation("Invalid profile data"), err))
		return
	}

	u, err := h.currentUser(c)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := input.apply(u, time.Now()); err != nil {
		apperr.Abort(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.store.Users().ReplaceOne(ctx, bson.M{"_id": u.ID}, u); err != nil {
		if store.IsDuplicateKey(err) {
			apperr.Abort(c, apperr.Duplicate("Email \""+input.Email+"\" is already registered, please try another"))
			return
		}
		apperr.Abort(c, err)
		return
	}

	token, err := utils.GenerateToken(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, authPayload(u, token))
}

// ListUsers is the admin account overview.
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.store.Users().Find(ctx, bson.M{})
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
