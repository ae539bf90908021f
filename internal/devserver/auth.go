package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/client/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const identityKey = "identity"

func (s *Server) issueToken(a *account) (string, error) {
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		User: models.Identity{ID: a.id, Name: a.name, Email: a.email, Profile: a.profileID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	return tok.SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*models.Identity, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, errors.New("invalid token")
	}
	return &claims.User, nil
}

func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			fail(c, http.StatusUnauthorized, "Not Authorized")
			return
		}
		user, err := s.parseToken(raw)
		if err != nil {
			fail(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.Identity {
	return c.MustGet(identityKey).(*models.Identity)
}

func (s *Server) respondToken(c *gin.Context, status int, a *account) {
	token, err := s.issueToken(a)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(status, models.TokenResponse{Token: token})
}

func (s *Server) signup(c *gin.Context) {
	var in models.SignupData
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[in.Email]; exists {
		fail(c, http.StatusBadRequest, "Account already exists")
		return
	}

	a := &account{id: uuid.NewString(), name: in.Name, email: in.Email, passwordHash: hash}
	profile := s.collections["profiles"].insert(document{"name": in.Name, "comments": []any{}}, s.now())
	a.profileID = profile.id()
	s.accounts[in.Email] = a

	s.respondToken(c, http.StatusOK, a)
}

func (s *Server) login(c *gin.Context) {
	var in models.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "malformed credentials")
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[in.Email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(in.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	s.respondToken(c, http.StatusOK, a)
}

func (s *Server) changePassword(c *gin.Context) {
	var in models.PasswordChange
	if err := c.ShouldBindJSON(&in); err != nil || in.NewPassword == "" {
		fail(c, http.StatusBadRequest, "new password is required")
		return
	}
	user := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[user.Email]
	if !ok || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(in.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	a.passwordHash = hash
	s.respondToken(c, http.StatusOK, a)
}
