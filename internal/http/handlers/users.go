package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "rentdesk/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `
	id,
	COALESCE(name,''),
	COALESCE(username,''),
	COALESCE(email,''),
	COALESCE(phone,''),
	COALESCE(role,'user'),
	COALESCE(status,'active')`

func scanAuthUser(row interface{ Scan(...any) error }) (AuthUser, error) {
	var u AuthUser
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status)
	return u, err
}

// GET /api/users
func GetUsers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT` + userColumns + ` FROM users ORDER BY name ASC`)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to query users", err)
		return
	}
	defer rows.Close()

	users := []AuthUser{}
	for rows.Next() {
		u, err := scanAuthUser(rows)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan user", err)
			return
		}
		users = append(users, u)
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	row := intconfig.DB.QueryRow(`SELECT`+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	u, err := scanAuthUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type userPayload struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(strings.TrimSpace(req.Password)) < 8 {
		RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "user"
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "active"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,NOW(),NOW())
	`, req.Name, req.Username, req.Email, req.Phone, string(hash), role, status)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store user", err)
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, AuthUser{
		ID: id, Name: req.Name, Username: req.Username,
		Email: req.Email, Phone: req.Phone, Role: role, Status: status,
	})
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE users SET
			name=?, username=?, email=?, phone=?,
			role=COALESCE(NULLIF(?,''), role),
			status=COALESCE(NULLIF(?,''), status),
			updated_at=NOW()
		WHERE id=?
	`, req.Name, req.Username, req.Email, req.Phone, req.Role, req.Status, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}

	if pw := strings.TrimSpace(req.Password); pw != "" {
		if len(pw) < 8 {
			RespondError(c, http.StatusBadRequest, "password must be at least 8 characters", nil)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
			return
		}
		if _, err := intconfig.DB.Exec(`UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?`, string(hash), id); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to update password", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete user", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
