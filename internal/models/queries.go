package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

func CreateUser(db *sql.DB, username, email, passwordHash string) (int64, error) {
	res, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash)
	if err != nil {
		if str := err.Error(); str != "" {
			if strings.Contains(str, "UNIQUE constraint failed: users.username") {
				return 0, ErrDuplicateUsername
			}
			if strings.Contains(str, "UNIQUE constraint failed: users.email") {
				return 0, ErrDuplicateEmail
			}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	row := db.QueryRow(`SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	row := db.QueryRow(`SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateSession(db *sql.DB, userID int64, sessionID string, expires time.Time) error {
	// one active session per user
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sessionID, userID, expires)
	return err
}

func GetSession(db *sql.DB, id string) (*Session, error) {
	row := db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s Session
	var revoked sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked); err != nil {
		return nil, err
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

func RevokeSession(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ? AND revoked_at IS NULL`, id)
	return err
}

func CreateBlog(db *sql.DB, userID int64, title, content, image string, posted time.Time) (int64, error) {
	res, err := db.Exec(`INSERT INTO blogs (user_id, title, content, image, date_posted) VALUES (?, ?, ?, ?, ?)`,
		userID, title, content, nullStr(image), posted)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func GetBlog(db *sql.DB, id int64) (*Blog, error) {
	row := db.QueryRow(`SELECT b.id, b.user_id, b.title, b.content, b.image, b.date_posted, u.username
        FROM blogs b JOIN users u ON u.id = b.user_id WHERE b.id = ?`, id)
	var b Blog
	var image sql.NullString
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Content, &image, &b.DatePosted, &b.Author); err != nil {
		return nil, err
	}
	b.Image = image.String
	return &b, nil
}

func UpdateBlog(db *sql.DB, id int64, title, content, image string) error {
	_, err := db.Exec(`UPDATE blogs SET title = ?, content = ?, image = ? WHERE id = ?`,
		title, content, nullStr(image), id)
	return err
}

func DeleteBlog(db *sql.DB, id int64) error {
	_, err := db.Exec(`DELETE FROM blogs WHERE id = ?`, id)
	return err
}

// ListBlogs returns all blogs, newest first.
func ListBlogs(db *sql.DB) ([]Blog, error) {
	return listBlogs(db, `SELECT b.id, b.user_id, b.title, b.content, b.image, b.date_posted, u.username
        FROM blogs b JOIN users u ON u.id = b.user_id ORDER BY b.date_posted DESC, b.id DESC`)
}

// ListBlogsByUser returns one user's blogs, newest first.
func ListBlogsByUser(db *sql.DB, userID int64) ([]Blog, error) {
	return listBlogs(db, `SELECT b.id, b.user_id, b.title, b.content, b.image, b.date_posted, u.username
        FROM blogs b JOIN users u ON u.id = b.user_id WHERE b.user_id = ? ORDER BY b.date_posted DESC, b.id DESC`, userID)
}

func listBlogs(db *sql.DB, query string, args ...any) ([]Blog, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var blogs []Blog
	for rows.Next() {
		var b Blog
		var image sql.NullString
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Content, &image, &b.DatePosted, &b.Author); err != nil {
			return nil, err
		}
		b.Image = image.String
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
